package repetition

// commonWords are grammatical words that carry no content on their own. An
// n-gram made mostly of them is boilerplate, not repetition worth reporting.
var commonWords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true, "each": true,
	"for": true, "from": true, "had": true, "has": true, "have": true, "he": true,
	"her": true, "his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true, "like": true,
	"may": true, "me": true, "more": true, "most": true, "my": true, "no": true,
	"not": true, "of": true, "on": true, "one": true, "only": true, "or": true,
	"other": true, "our": true, "out": true, "over": true, "own": true, "s": true,
	"same": true, "she": true, "should": true, "so": true, "some": true, "such": true,
	"than": true, "that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "those": true, "through": true,
	"to": true, "too": true, "up": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true, "while": true,
	"who": true, "why": true, "will": true, "with": true, "would": true, "you": true,
	"your": true,
}

// aiPhrases are stock phrases typical of unedited model output. A single
// occurrence is reported.
var aiPhrases = []string{
	"in conclusion",
	"let's dive in",
	"let's dive into",
	"dive deep into",
	"delve into",
	"it's important to note",
	"it is important to note",
	"it's worth noting",
	"it is worth noting",
	"in today's fast-paced world",
	"in today's competitive landscape",
	"in the ever-evolving",
	"navigate the complexities",
	"in the realm of",
	"a testament to",
	"at the end of the day",
	"game-changer",
	"unlock your potential",
	"unlock the power",
	"harness the power",
	"take it to the next level",
	"embark on a journey",
	"rest assured",
	"without further ado",
	"look no further",
	"first and foremost",
	"needless to say",
	"in summary",
	"to sum up",
	"whether you're a seasoned",
	"tapestry of",
	"elevate your",
}

// AIPhraseList returns a copy of the stock phrase list.
func AIPhraseList() []string {
	out := make([]string, len(aiPhrases))
	copy(out, aiPhrases)
	return out
}

// IsCommonWord reports whether word is on the stopword list.
func IsCommonWord(word string) bool {
	return commonWords[word]
}
