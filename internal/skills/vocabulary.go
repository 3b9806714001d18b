// Package skills provides skill extraction and overlap scoring against a
// controlled vocabulary.
package skills

// Vocabulary is an immutable table of known skill names. Entries are expected
// to be lowercase; matching happens against whitespace-normalized, lowercased
// text.
type Vocabulary []string

// DefaultVocabulary returns the built-in skill table used for screening runs.
// Tests can construct extractors with smaller vocabularies instead.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"python", "java", "c++", "c#", "sql", "pandas", "numpy", "scikit-learn", "tensorflow",
		"pytorch", "keras", "spark", "hadoop", "aws", "azure", "gcp", "docker", "kubernetes",
		"rest api", "flask", "django", "react", "node.js", "javascript", "html", "css",
		"computer vision", "nlp", "natural language processing", "deep learning", "machine learning",
		"etl", "powerbi", "tableau", "bash", "linux", "git", "opencv", "devops", "data analysis",
		"data science", "cloud computing", "mongodb", "mysql", "postgresql",
	}
}
