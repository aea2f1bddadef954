package agent

import (
	"log"

	"github.com/Vrajesh-Sharma/Blog-Agent/provider"
	"github.com/Vrajesh-Sharma/Blog-Agent/utils"
)

var toolLogger = log.New(log.Writer(), "[TOOL] ", log.LstdFlags)

// SearchTool returns a web search tool. The results are canned placeholders
// until a real search backend is wired in.
// TODO: back this with SerpApi or Google Custom Search.
func SearchTool() provider.Tool {
	return provider.Tool{
		Name:        "google_search_tool",
		Description: "Searches Google for the query and returns a list of results.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"query"},
		},
		Call: func(args map[string]interface{}) (map[string]interface{}, error) {
			toolLogger.Printf("searching for: %s", utils.Str(args["query"]))
			return map[string]interface{}{
				"results": []map[string]interface{}{
					{"title": "Understanding Agentic AI", "url": "https://example.com/agentic-ai", "snippet": "An overview of agentic AI systems and how they plan and act."},
					{"title": "AI Agents for Beginners", "url": "https://example.com/ai-agents", "snippet": "A gentle introduction to building AI agents with tools."},
					{"title": "The Future of LLMs", "url": "https://example.com/future-llms", "snippet": "Where large language models are heading next."},
				},
			}, nil
		},
	}
}

// OutlineTool returns a tool that builds a blog outline skeleton from key
// points. Placeholder structure for now.
func OutlineTool() provider.Tool {
	return provider.Tool{
		Name:        "create_outline_tool",
		Description: "Generates a blog outline structure based on provided key points.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"key_points": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Key points the outline should cover.",
				},
			},
			"required": []string{"key_points"},
		},
		Call: func(args map[string]interface{}) (map[string]interface{}, error) {
			toolLogger.Printf("creating outline for points: %v", args["key_points"])
			return map[string]interface{}{
				"outline": map[string]interface{}{
					"title": "The Rise of AI Agents",
					"sections": []map[string]interface{}{
						{"heading": "Introduction", "short_description": "What are agents?"},
						{"heading": "Core Concepts", "short_description": "Tools and planning."},
						{"heading": "Conclusion", "short_description": "Future outlook."},
					},
				},
			}, nil
		},
	}
}
