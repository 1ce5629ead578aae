package jiramarkup

// Verbose enables debug logging for every conversion, including a dump of
// inputs that had to fall back to plain text
var Verbose = false

// MaxDepth bounds element nesting in the parsed tree. Elements opened below
// this depth are attached to the deepest allowed ancestor instead.
var MaxDepth = 512

// NoContent is the body used for messages without any content
var NoContent = "_(No content)_"

// Target dialect tokens
const (
	markerUnordered = '*'
	markerOrdered   = '#'

	quotePrefix = "bq. "
	codeBlock   = "{code}"
	rule        = "----"
)
