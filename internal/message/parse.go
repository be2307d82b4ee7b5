package message

// Parse splits text and parses every template argument value.
func Parse(text string) (*Message, error) {
	return ParseWith(text, Options{})
}

// ParseWith is Parse with span placement options.
func ParseWith(text string, opts Options) (*Message, error) {
	c, err := Split(text, opts)
	if err != nil {
		return nil, err
	}
	return c.Resolve()
}
