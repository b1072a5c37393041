package generator

import "github.com/nguyentantai21042004/notescribe/internal/apperr"

// FirstText returns the text of the first content segment. The reply is
// malformed if it has no segments or segment 0 is not of type "text".
func (r *Reply) FirstText() (string, error) {
	if r == nil || len(r.Content) == 0 {
		return "", apperr.New(apperr.KindMalformedReply, "reply has no content segments")
	}
	first := r.Content[0]
	if first.Type != SegmentText {
		return "", apperr.New(apperr.KindMalformedReply, "first content segment has type %q, want %q", first.Type, SegmentText)
	}
	return first.Text, nil
}

func textReply(id, model, stop string, texts ...string) *Reply {
	reply := &Reply{ID: id, Model: model, StopReason: stop}
	for _, t := range texts {
		reply.Content = append(reply.Content, Segment{Type: SegmentText, Text: t})
	}
	return reply
}
