package element

// Rule is the content model for one parent element kind.
type Rule struct {
	Children      []Kind // permitted child kinds
	AllowCharData bool   // text/entity/inline spans allowed directly
	Required      []string
	Known         []string // known (non-required) attributes; others are CodeUnknownAttribute
}

var grammar = map[Kind]Rule{
	Manual: {
		Children: []Kind{Title, Summary, Strapline, Credit, Version, Date, Resources, Index, Chapter, Chapterlist},
	},
	Index: {
		Children: []Kind{Title, Resources, Chapter},
		Known:    []string{"file", "id"},
	},
	Chapter: {
		Children: []Kind{Title, Summary, Strapline, Credit, Resources, Section, P, Ol, Ul, Table, Code, Footnote, Callout, Chapterlist},
		Known:    []string{"file", "id"},
	},
	Section: {
		Children: []Kind{Title, Resources, Section, P, Ol, Ul, Table, Code, Footnote, Callout, Columns},
		Known:    []string{"id"},
	},

	Resources: {
		Children: []Kind{Mode, Images, Downloads},
	},
	Mode: {
		Children: []Kind{Filename, Folder, Stylesheet},
		Required: []string{"name"},
	},
	Filename: {AllowCharData: true},
	Folder:   {AllowCharData: true},
	Stylesheet: {AllowCharData: true},
	Images:     {AllowCharData: true},
	Downloads:  {AllowCharData: true},

	P: {Children: inlineSpans(), AllowCharData: true},
	Ol: {
		Children: []Kind{Li},
		Known:    []string{"type"},
	},
	Ul: {Children: []Kind{Li}},
	Li: {Children: []Kind{P, Ol, Ul, Code}},
	Table: {
		Children: []Kind{Title, Coldef, Row},
		Known:    []string{"id"},
	},
	Row:    {Children: []Kind{Col}},
	Col:    {Children: append([]Kind{P}, inlineSpans()...), AllowCharData: true},
	Coldef: {Known: []string{"align", "width"}},
	Columns: {
		Children: []Kind{Col},
	},
	Code: {
		AllowCharData: true,
		Known:         []string{"id", "lang"},
	},
	Footnote: {Children: append([]Kind{P}, inlineSpans()...), AllowCharData: true, Known: []string{"id"}},
	Callout:  {Children: append([]Kind{P, Ol, Ul}, inlineSpans()...), AllowCharData: true},
	Chapterlist: {
		Known: []string{"id"},
	},
	Br: {},

	Title:     {AllowCharData: true, Children: inlineSpans()},
	Summary:   {AllowCharData: true, Children: inlineSpans()},
	Strapline: {AllowCharData: true, Children: inlineSpans()},
	Credit:    {AllowCharData: true, Children: inlineSpans()},
	Version:   {AllowCharData: true},
	Date:      {AllowCharData: true},
}

// inlineSpans lists every inline-span Kind, used as the default child set
// for chunk-bearing block elements.
func inlineSpans() []Kind {
	return []Kind{
		Cite, Code, Em, Strong, File, Icon, Key, Mouse, Link, Ref, Variable,
		Window, Function, Swi, Command, Constant, Event, Keyword, Maths,
		Menu, Message, Name, Type, Intro, Entry, Br,
	}
}

func init() {
	// Every inline span kind is allowed character data and has no further
	// element children of its own.
	for _, k := range inlineSpans() {
		if k == Code || k == Br {
			continue // already declared above with its own rule
		}
		if _, ok := grammar[k]; !ok {
			grammar[k] = Rule{AllowCharData: true, Known: []string{"id"}}
		}
	}
	// ref/link additionally carry target-reference attributes.
	grammar[Ref] = Rule{AllowCharData: true, Known: []string{"id", "title", "flatten"}}
	grammar[Link] = Rule{AllowCharData: true, Known: []string{"href", "flatten", "external"}}
}

// RuleFor returns the content model for a parent Kind. Parents with no
// declared rule permit no children and no character data (a closed leaf).
func RuleFor(parent Kind) Rule {
	return grammar[parent]
}

// Permits reports whether child is an allowed child of parent.
func (r Rule) Permits(child Kind) bool {
	for _, k := range r.Children {
		if k == child {
			return true
		}
	}
	return false
}

// IsKnownAttribute reports whether name is declared (required or known) for
// rule r. Unknown attributes are non-fatal but still diagnosed.
func (r Rule) IsKnownAttribute(name string) bool {
	for _, n := range r.Required {
		if n == name {
			return true
		}
	}
	for _, n := range r.Known {
		if n == name {
			return true
		}
	}
	return false
}
