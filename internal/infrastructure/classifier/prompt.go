package classifier

// BuildPrompt renders the classification prompt for one excerpt. The
// template and field list are fixed so the same excerpt always produces the
// same prompt.
func BuildPrompt(excerpt string) string {
	return `You are a librarian preparing intake metadata for a digital bookshelf.
Read the excerpt below and return a strict JSON object with exactly these keys:
clean_title (string, short canonical title),
full_title (string),
summary (string, 2-4 sentences),
category (string, slash-separated path such as "Business/Marketing"),
index (array of strings, main chapters or sections),
key_ideas (array of strings),
target_audience (string),
reddit_post (string, a short post promoting the book).
No markdown, no code fences, no extra keys.

Excerpt:
` + excerpt
}
