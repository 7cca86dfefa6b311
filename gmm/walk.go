package gmm

// Walk calls fn for every chunk depth first in file order. Top-level chunks
// have depth 0. Returning an error from fn stops the walk.
func Walk(chunks []Chunk, fn func(depth int, ck Chunk) error) error {
	return walk(chunks, 0, fn)
}

func walk(chunks []Chunk, depth int, fn func(depth int, ck Chunk) error) error {
	for _, ck := range chunks {
		if err := fn(depth, ck); err != nil {
			return err
		}
		if list, ok := ck.(*List); ok {
			if err := walk(list.Children, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
