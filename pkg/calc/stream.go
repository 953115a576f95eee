package calc

// TokenStream is the consumable remainder of an input line. The engine
// pulls tokens from the front; operations like "sto x" may pull their
// trailing word arguments from it as well.
type TokenStream struct {
	tokens []string
}

// NewTokenStream wraps tokens in a stream.
func NewTokenStream(tokens []string) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// HasNext reports whether any token remains.
func (s *TokenStream) HasNext() bool {
	return s != nil && len(s.tokens) > 0
}

// Next consumes and returns the front token. It must only be called
// after HasNext reports true.
func (s *TokenStream) Next() string {
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	return t
}

// Len returns the number of remaining tokens.
func (s *TokenStream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}
