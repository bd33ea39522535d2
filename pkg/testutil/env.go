package testutil

// FakeEnv is an in-memory environment. Unset names are simply absent.
type FakeEnv map[string]string

// Lookup returns the value of name and whether it is set.
func (e FakeEnv) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}
