package internal

// transformKey is fixed: store files written with a different key are
// unreadable, so changing it breaks compatibility with existing databases.
const transformKey = "sachin_key_v1"

// Transform applies the reversible byte transform used for account records
// at rest. It is its own inverse: Transform(Transform(b)) equals b for any
// byte sequence. It carries no confidentiality guarantee; callers treat it
// as an opaque encoding boundary, not a security mechanism.
func Transform(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ transformKey[i%len(transformKey)]
	}
	return out
}
