// Package element holds the fixed catalogue of element tag names and their content category.
package element

import "github.com/standardbeagle/xmlman/internal/searchtree"

// Kind is the closed enumeration of element tag names the grammar accepts.
type Kind int

const (
	Manual Kind = iota
	Index
	Chapter
	Section

	Resources
	Mode
	Filename
	Folder
	Stylesheet
	Images
	Downloads

	P
	Ol
	Ul
	Li
	Table
	Row
	Col
	Coldef
	Columns
	Code
	Footnote
	Callout
	Chapterlist
	Br

	Title
	Summary
	Strapline
	Credit
	Version
	Date

	Cite
	Em
	Strong
	File
	Icon
	Key
	Mouse
	Link
	Ref
	Variable
	Window
	Function
	Swi
	Command
	Constant
	Event
	Keyword
	Maths
	Menu
	Message
	Name
	Type
	Intro
	Entry

	// TextData and EntityData are synthetic leaf kinds for raw character
	// data and entity references inside chunk content. They never appear in
	// a document's own markup: Lookup does resolve their '#'-prefixed table
	// names, but no tag name can begin with '#'.
	TextData
	EntityData

	count
)

// Category is the content category a block-level element belongs to.
type Category int

const (
	// CategoryBlock groups other blocks or paragraphs.
	CategoryBlock Category = iota
	// CategoryChunk is an inline span or text/entity.
	CategoryChunk
	// CategoryHybrid admits both blocks and bare inline content (which
	// triggers implied-paragraph promotion).
	CategoryHybrid
	// CategoryMetadata is title/summary/strapline/etc: chunk content with
	// its own dedicated slot on the parent, not a generic child.
	CategoryMetadata
	// CategoryResource is the resources/mode/filename/... subtree: never
	// rendered directly, consumed by the resource resolver.
	CategoryResource
)

type entry struct {
	name     string
	category Category
}

var table = [count]entry{
	Manual:  {"manual", CategoryHybrid},
	Index:   {"index", CategoryHybrid},
	Chapter: {"chapter", CategoryHybrid},
	Section: {"section", CategoryHybrid},

	Resources:  {"resources", CategoryResource},
	Mode:       {"mode", CategoryResource},
	Filename:   {"filename", CategoryResource},
	Folder:     {"folder", CategoryResource},
	Stylesheet: {"stylesheet", CategoryResource},
	Images:     {"images", CategoryResource},
	Downloads:  {"downloads", CategoryResource},

	P:           {"p", CategoryBlock},
	Ol:          {"ol", CategoryHybrid},
	Ul:          {"ul", CategoryHybrid},
	Li:          {"li", CategoryHybrid},
	Table:       {"table", CategoryBlock},
	Row:         {"row", CategoryBlock},
	Col:         {"col", CategoryHybrid},
	Coldef:      {"coldef", CategoryResource},
	Columns:     {"columns", CategoryBlock},
	Code:        {"code", CategoryBlock},
	Footnote:    {"footnote", CategoryHybrid},
	Callout:     {"callout", CategoryHybrid},
	Chapterlist: {"chapterlist", CategoryBlock},
	Br:          {"br", CategoryChunk},

	Title:     {"title", CategoryMetadata},
	Summary:   {"summary", CategoryMetadata},
	Strapline: {"strapline", CategoryMetadata},
	Credit:    {"credit", CategoryMetadata},
	Version:   {"version", CategoryMetadata},
	Date:      {"date", CategoryMetadata},

	Cite:     {"cite", CategoryChunk},
	Em:       {"em", CategoryChunk},
	Strong:   {"strong", CategoryChunk},
	File:     {"file", CategoryChunk},
	Icon:     {"icon", CategoryChunk},
	Key:      {"key", CategoryChunk},
	Mouse:    {"mouse", CategoryChunk},
	Link:     {"link", CategoryChunk},
	Ref:      {"ref", CategoryChunk},
	Variable: {"variable", CategoryChunk},
	Window:   {"window", CategoryChunk},
	Function: {"function", CategoryChunk},
	Swi:      {"swi", CategoryChunk},
	Command:  {"command", CategoryChunk},
	Constant: {"constant", CategoryChunk},
	Event:    {"event", CategoryChunk},
	Keyword:  {"keyword", CategoryChunk},
	Maths:    {"maths", CategoryChunk},
	Menu:     {"menu", CategoryChunk},
	Message:  {"message", CategoryChunk},
	Name:     {"name", CategoryChunk},
	Type:     {"type", CategoryChunk},
	Intro:    {"intro", CategoryChunk},
	Entry:    {"entry", CategoryChunk},

	TextData:   {"#text", CategoryChunk},
	EntityData: {"#entity", CategoryChunk},
}

var byName = func() *searchtree.Tree[Kind] {
	m := make(map[string]Kind, len(table))
	for i, e := range table {
		m[e.name] = Kind(i)
	}
	return searchtree.New(m)
}()

// Lookup resolves a tag name to its Kind. Called once per start/end tag
// during tokenizing, so it goes through the shared search tree rather than
// a plain map.
func Lookup(name string) (Kind, bool) {
	return byName.Lookup(name)
}

// Name returns the element's declared tag name.
func (k Kind) Name() string {
	if k < 0 || int(k) >= len(table) {
		return ""
	}
	return table[k].name
}

// Category returns the element's content category.
func (k Kind) Category() Category {
	if k < 0 || int(k) >= len(table) {
		return CategoryChunk
	}
	return table[k].category
}

// IsBlockCollection reports whether k's children are exclusively blocks,
// implying bare inline content must be wrapped in an implied paragraph.
func (k Kind) IsBlockCollection() bool {
	return k.Category() == CategoryHybrid
}

// IsNumbered reports whether k is one of the kinds that receive a sibling
// index when titled.
func (k Kind) IsNumbered() bool {
	return k == Chapter || k == Section
}

// IsIDable reports whether k is one of the kinds the linker indexes by ID.
func (k Kind) IsIDable() bool {
	switch k {
	case Chapter, Index, Section, Table, Code:
		return true
	default:
		return false
	}
}

// Names returns every catalogued element name, in table order.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.name
	}
	return names
}

// Count returns the number of catalogued elements.
func Count() int {
	return int(count)
}
