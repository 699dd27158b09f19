package resume

// Reference vocabularies for the keyword extraction strategy. Loaded once,
// never mutated; matching preserves this casing and ordering.

var skillVocabulary = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript",
	"React", "Vue", "Angular", "Node.js", "Express", "Django",
	"Docker", "Kubernetes", "Terraform",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"AWS", "Azure", "GCP",
	"GraphQL", "REST", "gRPC", "Microservices", "Git", "CI/CD",
	"Machine Learning", "Deep Learning", "Data Science", "NLP",
	"DevOps", "Agile", "Scrum",
	"HTML", "CSS", "SQL", "Linux",
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "mba",
	"b.sc", "m.sc", "b.tech", "m.tech", "b.e", "bca", "mca",
	"degree", "diploma", "university", "college", "institute",
	"computer science", "engineering", "information technology",
}
