package game

import "math/rand/v2"

// Difficulty buckets for the built-in term catalog.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d names a known bucket.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// terms is the built-in catalog of tech concepts teams explain. Hosts can
// always supply their own term instead.
var terms = []Term{
	{En: "Microservices", Difficulty: DifficultyMedium},
	{En: "GraphQL", Difficulty: DifficultyMedium},
	{En: "Middleware", Difficulty: DifficultyEasy},
	{En: "API Gateway", Difficulty: DifficultyMedium},
	{En: "Serverless", Difficulty: DifficultyMedium},
	{En: "Container", Difficulty: DifficultyEasy},
	{En: "Kubernetes", Difficulty: DifficultyHard},
	{En: "Docker", Difficulty: DifficultyEasy},
	{En: "CI/CD", Difficulty: DifficultyMedium},
	{En: "DevOps", Difficulty: DifficultyEasy},
	{En: "NoSQL", Difficulty: DifficultyEasy},
	{En: "ACID", Difficulty: DifficultyMedium},
	{En: "Sharding", Difficulty: DifficultyHard},
	{En: "Index", Difficulty: DifficultyEasy},
	{En: "Normalization", Difficulty: DifficultyMedium},
	{En: "Replication", Difficulty: DifficultyMedium},
	{En: "MongoDB", Difficulty: DifficultyEasy},
	{En: "PostgreSQL", Difficulty: DifficultyEasy},
	{En: "Redis", Difficulty: DifficultyEasy},
	{En: "CAP Theorem", Difficulty: DifficultyHard},
	{En: "REST API", Difficulty: DifficultyEasy},
	{En: "WebSocket", Difficulty: DifficultyMedium},
	{En: "JWT", Difficulty: DifficultyMedium},
	{En: "OAuth", Difficulty: DifficultyMedium},
	{En: "CORS", Difficulty: DifficultyMedium},
	{En: "CDN", Difficulty: DifficultyEasy},
	{En: "Load Balancer", Difficulty: DifficultyMedium},
	{En: "Reverse Proxy", Difficulty: DifficultyMedium},
	{En: "SSL/TLS", Difficulty: DifficultyMedium},
	{En: "HTTP/2", Difficulty: DifficultyMedium},
	{En: "React", Difficulty: DifficultyEasy},
	{En: "Vue.js", Difficulty: DifficultyEasy},
	{En: "Angular", Difficulty: DifficultyEasy},
	{En: "Virtual DOM", Difficulty: DifficultyMedium},
	{En: "Component", Difficulty: DifficultyEasy},
	{En: "State Management", Difficulty: DifficultyMedium},
	{En: "Redux", Difficulty: DifficultyMedium},
	{En: "Webpack", Difficulty: DifficultyMedium},
	{En: "Babel", Difficulty: DifficultyMedium},
	{En: "TypeScript", Difficulty: DifficultyMedium},
	{En: "Node.js", Difficulty: DifficultyEasy},
	{En: "Express", Difficulty: DifficultyEasy},
	{En: "Framework", Difficulty: DifficultyEasy},
	{En: "MVC", Difficulty: DifficultyMedium},
	{En: "ORM", Difficulty: DifficultyMedium},
	{En: "Migration", Difficulty: DifficultyMedium},
	{En: "Caching", Difficulty: DifficultyEasy},
	{En: "Queue", Difficulty: DifficultyEasy},
	{En: "Async/Await", Difficulty: DifficultyMedium},
	{En: "Promise", Difficulty: DifficultyMedium},
	{En: "AWS", Difficulty: DifficultyEasy},
	{En: "Azure", Difficulty: DifficultyEasy},
	{En: "Google Cloud", Difficulty: DifficultyEasy},
	{En: "Lambda", Difficulty: DifficultyMedium},
	{En: "S3", Difficulty: DifficultyEasy},
	{En: "EC2", Difficulty: DifficultyEasy},
	{En: "Auto Scaling", Difficulty: DifficultyMedium},
	{En: "VPC", Difficulty: DifficultyHard},
	{En: "IAM", Difficulty: DifficultyMedium},
	{En: "CloudFormation", Difficulty: DifficultyHard},
	{En: "Encryption", Difficulty: DifficultyEasy},
	{En: "Hashing", Difficulty: DifficultyMedium},
	{En: "SQL Injection", Difficulty: DifficultyMedium},
	{En: "XSS", Difficulty: DifficultyMedium},
	{En: "CSRF", Difficulty: DifficultyHard},
	{En: "Two-Factor Auth", Difficulty: DifficultyEasy},
	{En: "Firewall", Difficulty: DifficultyEasy},
	{En: "VPN", Difficulty: DifficultyEasy},
	{En: "Penetration Testing", Difficulty: DifficultyMedium},
	{En: "Zero Trust", Difficulty: DifficultyHard},
	{En: "Machine Learning", Difficulty: DifficultyEasy},
	{En: "Neural Network", Difficulty: DifficultyMedium},
	{En: "Big Data", Difficulty: DifficultyEasy},
	{En: "Data Lake", Difficulty: DifficultyMedium},
	{En: "ETL", Difficulty: DifficultyMedium},
	{En: "Apache Spark", Difficulty: DifficultyHard},
	{En: "Hadoop", Difficulty: DifficultyMedium},
	{En: "TensorFlow", Difficulty: DifficultyMedium},
	{En: "API", Difficulty: DifficultyEasy},
	{En: "JSON", Difficulty: DifficultyEasy},
	{En: "Agile", Difficulty: DifficultyEasy},
	{En: "Scrum", Difficulty: DifficultyEasy},
	{En: "Sprint", Difficulty: DifficultyEasy},
	{En: "Kanban", Difficulty: DifficultyEasy},
	{En: "Code Review", Difficulty: DifficultyEasy},
	{En: "Refactoring", Difficulty: DifficultyMedium},
	{En: "Technical Debt", Difficulty: DifficultyMedium},
	{En: "Unit Testing", Difficulty: DifficultyEasy},
	{En: "Integration Testing", Difficulty: DifficultyMedium},
	{En: "TDD", Difficulty: DifficultyMedium},
	{En: "Blockchain", Difficulty: DifficultyMedium},
	{En: "Smart Contract", Difficulty: DifficultyHard},
	{En: "Quantum Computing", Difficulty: DifficultyHard},
	{En: "Edge Computing", Difficulty: DifficultyMedium},
	{En: "IoT", Difficulty: DifficultyEasy},
	{En: "Distributed System", Difficulty: DifficultyHard},
	{En: "Event Sourcing", Difficulty: DifficultyHard},
	{En: "CQRS", Difficulty: DifficultyHard},
	{En: "Saga Pattern", Difficulty: DifficultyHard},
	{En: "Circuit Breaker", Difficulty: DifficultyHard},
}

// RandomTerm picks any term from the catalog.
func RandomTerm() Term {
	return terms[rand.IntN(len(terms))]
}

// RandomTermByDifficulty picks a term from the named bucket, falling back
// to the whole catalog if the bucket is empty.
func RandomTermByDifficulty(difficulty string) Term {
	var filtered []Term
	for _, t := range terms {
		if t.Difficulty == difficulty {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return RandomTerm()
	}
	return filtered[rand.IntN(len(filtered))]
}
