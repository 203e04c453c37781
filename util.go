package fleece

func CoalesceStr(args ...string) string {
	for _, v := range args {
		if v != "" {
			return v
		}
	}
	return ""
}

type NamedEntity[T any] struct {
	Value T
	Name  string
}
