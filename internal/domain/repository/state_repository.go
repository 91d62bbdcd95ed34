package repository

// Claves del estado persistido de la sesión (un registro por clave).
const (
	StateKeyCart         = "cart-storage"
	StateKeyTransactions = "transaction-storage"
	StateKeySettings     = "settings-storage"
	StateKeyAuth         = "auth-storage"
)

// StateRepository persiste el estado de la sesión como documentos JSON por
// clave. Las escrituras son last-writer-wins: hay una sola caja por proceso.
type StateRepository interface {
	// Save reemplaza el documento de la clave.
	Save(key string, payload []byte) error
	// Load devuelve el documento o (nil, nil) si la clave no existe.
	Load(key string) ([]byte, error)
}
