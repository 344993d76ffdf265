package format

// stopWords are excluded from the overused-word frequency table. Only content
// words of length >= 4 are counted, so shorter function words never reach the
// table in the first place.
var stopWords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "into": true,
	"over": true, "than": true, "them": true, "they": true, "their": true,
	"were": true, "have": true, "been": true, "both": true, "each": true,
	"more": true, "most": true, "some": true, "such": true, "then": true,
	"when": true, "where": true, "which": true, "while": true, "will": true,
	"would": true, "could": true, "should": true, "about": true, "across": true,
	"after": true, "also": true, "and": true, "the": true, "for": true,
	"through": true, "within": true, "your": true, "our": true, "its": true,
}
