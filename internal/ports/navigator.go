package ports

// Navigator performs a client-side navigation to target ("path" or
// "path?query"). The host is expected to re-fetch the list for the new URL.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(target string)

// Navigate calls f(target)
func (f NavigatorFunc) Navigate(target string) { f(target) }
