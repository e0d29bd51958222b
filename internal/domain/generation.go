package domain

// TextStream is an open generative response. Recv returns io.EOF after the last
// fragment. Close must be called on every exit path.
type TextStream interface {
	Recv() (string, error)
	Close() error
}
