package analyzer

// analysisSystemPrompt instructs the model to analyze a Dockerfile and
// respond with the structured JSON the envelope type decodes.
const analysisSystemPrompt = `You are a Dockerfile security and optimization expert. Analyze the provided Dockerfile and provide:
1. Security issues and recommendations
2. Optimization opportunities
3. Best practices violations
4. An improved version of the Dockerfile

Consider these advanced optimization strategies:
- Multi-stage builds for compiled languages
- Layer optimization and caching
- Proper ordering of commands
- Use of build arguments
- Efficient package management
- Resource constraints
- Build context optimization

Format your response as a JSON with this structure:
{
    "issues": [
        {
            "severity": "high/medium/low",
            "category": "security/optimization/best_practices",
            "description": "Detailed description of the issue",
            "recommendation": "Specific fix recommendation",
            "line_number": optional_line_number
        }
    ],
    "optimized_dockerfile": "Complete improved Dockerfile content",
    "security_score": "1-100 score",
    "optimization_score": "1-100 score",
    "optimization_metrics": {
        "layer_count": "number of layers",
        "estimated_size": "estimated image size",
        "cache_efficiency": "1-100 score",
        "build_time_score": "1-100 score",
        "maintainability_score": "1-100 score"
    }
}`

// analysisSchema constrains structured output to the analysis envelope.
// Scores are typed as integers here even though the decoder also accepts
// quoted numbers from models that ignore the schema.
func analysisSchema() map[string]interface{} {
	scoreProp := map[string]interface{}{"type": "integer"}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"issues": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"severity":       map[string]interface{}{"type": "string", "enum": []string{"high", "medium", "low"}},
						"category":       map[string]interface{}{"type": "string"},
						"description":    map[string]interface{}{"type": "string"},
						"recommendation": map[string]interface{}{"type": "string"},
						"line_number":    map[string]interface{}{"type": "integer"},
					},
					"required": []string{"severity", "category", "description", "recommendation"},
				},
			},
			"optimized_dockerfile": map[string]interface{}{"type": "string"},
			"security_score":       scoreProp,
			"optimization_score":   scoreProp,
			"optimization_metrics": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"layer_count":           scoreProp,
					"estimated_size":        map[string]interface{}{"type": "string"},
					"cache_efficiency":      scoreProp,
					"build_time_score":      scoreProp,
					"maintainability_score": scoreProp,
				},
				"required": []string{"layer_count", "estimated_size", "cache_efficiency", "build_time_score", "maintainability_score"},
			},
		},
		"required": []string{"issues", "optimized_dockerfile", "security_score", "optimization_score", "optimization_metrics"},
	}
}
