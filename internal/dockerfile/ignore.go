package dockerfile

// DefaultIgnoreGlobs returns the curated build-context exclusion list for
// a .dockerignore file. The set is fixed: it does not depend on the
// document being rewritten, so it is stable across invocations. Whether
// the list gets persisted, and whether an existing .dockerignore may be
// overwritten, is the caller's decision, never this package's.
func DefaultIgnoreGlobs() []string {
	return []string{
		".git",
		".gitignore",
		"Dockerfile",
		".dockerignore",
		"__pycache__",
		"*.pyc",
		"*.pyo",
		"*.pyd",
		".Python",
		"env",
		"pip-log.txt",
		"pip-delete-this-directory.txt",
		".tox",
		".coverage",
		".coverage.*",
		"htmlcov",
		".pytest_cache",
		".env",
		".venv",
		"venv",
		"node_modules",
		"npm-debug.log",
	}
}
