package relevance

// SchemaError reports an invalid judgment or prediction record, such as
// a duplicate (query, doc) pair or a negative relevance grade.
type SchemaError struct {
	msg string
}

func (e *SchemaError) Error() string {
	return e.msg
}
