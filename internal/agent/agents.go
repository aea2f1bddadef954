package agent

import "github.com/Vrajesh-Sharma/Blog-Agent/provider"

// NewResearchAgent researches the topic, with a search tool available, and
// answers with key points and sources as JSON.
func NewResearchAgent(prov provider.Provider, model string, retrier *Retrier) *Agent {
	instruction := "You are a Research Agent. Your goal is to research technical topics. " +
		"Use the google_search_tool if necessary. " +
		"Extract 3-5 key points and sources. " +
		"Return strictly a JSON object with keys: 'key_points' (array of strings) and 'sources' (array of objects with 'title', 'url' and 'snippet')."
	return New("research", prov, model, instruction, []provider.Tool{SearchTool()}, true, retrier)
}

// NewOutlineAgent turns research key points into a structured outline.
func NewOutlineAgent(prov provider.Provider, model string, retrier *Retrier) *Agent {
	instruction := "You are an Outline Agent. Create a structured blog outline from the research key points. " +
		"Scale the number of sections with the requested length: 3-4 sections for a short post, 5-6 for a medium one, 7 or more for a long one. " +
		"Return strictly a JSON object with keys: 'title' (string) and 'sections' (array of {heading, short_description})."
	return New("outline", prov, model, instruction, []provider.Tool{OutlineTool()}, true, retrier)
}

// NewWritingAgent drafts the full post from the outline.
func NewWritingAgent(prov provider.Provider, model string, retrier *Retrier) *Agent {
	instruction := "You are a generic Writing Agent. Draft a complete technical blog using the provided outline and key points. " +
		"Respect the requested tone, target word count and audience from the preferences. " +
		"Include examples and code snippets where relevant. Return plain text markdown."
	return New("writing", prov, model, instruction, nil, false, retrier)
}

// NewEditingAgent polishes the draft into the final post.
func NewEditingAgent(prov provider.Provider, model string, retrier *Retrier) *Agent {
	instruction := "You are an Editor. Polish the draft for grammar, clarity, and tone. " +
		"Reconcile the text against the provided preferences. " +
		"Add an author's note at the end. Return the full final blog post in markdown."
	return New("editing", prov, model, instruction, nil, false, retrier)
}
