package model

// Author is the nested author element of a feed entry.
type Author struct {
	Name string `xml:"name" json:"name"`
}

// Entry is one Slashdot Atom entry. Slash-namespaced elements are matched by
// local name only.
type Entry struct {
	ID         string `xml:"id" json:"id"`
	Title      string `xml:"title" json:"title"`
	Author     Author `xml:"author" json:"author"`
	Updated    string `xml:"updated" json:"updated"` // ISO-8601
	Department string `xml:"department" json:"department"`
	Comments   int    `xml:"comments" json:"comments"`
	Section    string `xml:"section" json:"section"`
}

// Feed is the Atom document root holding the entry list.
type Feed struct {
	Title   string  `xml:"title"`
	Entries []Entry `xml:"entry"`
}
