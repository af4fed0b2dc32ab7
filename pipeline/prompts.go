package pipeline

// Prompt templates for the four analysis steps. Each takes the input text as
// its single formatting argument.
const (
	classifyPrompt = "Classify the following text into one of the categories: News, Blog, Research, or Other.\n\nText: %s\n\nCategory:"

	entitiesPrompt = "Extract all the entities (Person, Organization, Location) mentioned in the following text. Provide the result as a comma-separated list.\n\nText: %s\n\nEntities:"

	structuredEntitiesPrompt = "Extract all the entities (Person, Organization, Location) mentioned in the following text. Respond with a JSON array of strings and nothing else.\n\nText: %s\n\nEntities:"

	summaryPrompt = "Summarize the following text in one short sentence.\n\nText: %s\n\nSummary:"

	sentimentPrompt = "Analyze the sentiment of the following text. Respond with exactly one word: Positive, Negative, or Neutral.\n\nText: %s\n\nSentiment:"
)
