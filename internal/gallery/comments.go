package gallery

import "strings"

// NoCommentsMessage is rendered for an item without comments.
const NoCommentsMessage = "No comments written"

// CommentLedger holds free-text notes per item index for the session. An
// index without comments has no entry.
type CommentLedger struct {
	entries map[int][]string
}

// NewCommentLedger returns an empty ledger.
func NewCommentLedger() *CommentLedger {
	return &CommentLedger{entries: make(map[int][]string)}
}

// Add appends text to index. Blank text is ignored.
func (l *CommentLedger) Add(index int, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	l.entries[index] = append(l.entries[index], text)
	return true
}

// Remove deletes the comment at position for index.
func (l *CommentLedger) Remove(index, position int) bool {
	list, ok := l.entries[index]
	if !ok || position < 0 || position >= len(list) {
		return false
	}
	list = append(list[:position:position], list[position+1:]...)
	if len(list) == 0 {
		delete(l.entries, index)
		return true
	}
	l.entries[index] = list
	return true
}

// Comments returns a copy of the comments for index, nil when there are none.
func (l *CommentLedger) Comments(index int) []string {
	list, ok := l.entries[index]
	if !ok {
		return nil
	}
	return append([]string(nil), list...)
}

// Render returns the comments for display, or the placeholder message.
func (l *CommentLedger) Render(index int) []string {
	if list := l.Comments(index); list != nil {
		return list
	}
	return []string{NoCommentsMessage}
}

// Has reports whether index has an entry.
func (l *CommentLedger) Has(index int) bool {
	_, ok := l.entries[index]
	return ok
}

// Reset drops every comment.
func (l *CommentLedger) Reset() {
	l.entries = make(map[int][]string)
}
