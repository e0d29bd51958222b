package domain

// KeyPrefix namespaces every key this service writes to the store.
const KeyPrefix = "pensum:"

// VectorConfig holds query vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model            string
	Dimensions       int
	DistanceMetric   string
	Algorithm        string
	QueryInstruction string
}

// DefaultVectorConfig returns the default configuration tuned for mxbai-embed-large.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:            "mxbai-embed-large",
		Dimensions:       1024,
		DistanceMetric:   "cosine",
		Algorithm:        "hnsw",
		QueryInstruction: "Represent this sentence for searching relevant passages: ",
	}
}
