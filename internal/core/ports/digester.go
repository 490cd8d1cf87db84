package ports

// Digester computes content digests of files and directory trees.
//
//go:generate mockgen -source=digester.go -destination=mocks/mock_digester.go -package=mocks
type Digester interface {
	// Digest returns a stable digest over the given paths. Missing paths are skipped.
	Digest(paths ...string) (string, error)
}
