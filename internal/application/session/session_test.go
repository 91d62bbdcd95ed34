package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caja-pos-api/internal/application/session"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/repository"
	"github.com/jhoicas/caja-pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// memStore implementa repository.StateRepository en memoria.
type memStore struct {
	docs    map[string][]byte
	saveErr error
}

func newMemStore() *memStore { return &memStore{docs: map[string][]byte{}} }

func (m *memStore) Save(key string, payload []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.docs[key] = cp
	return nil
}

func (m *memStore) Load(key string) ([]byte, error) {
	payload, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	return payload, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func defaults() entity.StoreSettings {
	return entity.StoreSettings{TaxRate: dec("0.08"), Currency: "USD"}
}

func producto(id, name, price string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Price: dec(price), Stock: 10, IsActive: true}
}

func transaccion(id string, ts time.Time) entity.Transaction {
	return entity.Transaction{
		ID:            id,
		ReceiptNumber: "POS-20250831-120000.000-ABCDEF",
		Items: []entity.CartLine{
			{ID: "l1", ProductID: "p1", Name: "Café", UnitPrice: dec("3.50"), Quantity: 2},
		},
		Subtotal:      dec("7.00"),
		Tax:           dec("0.56"),
		Total:         dec("7.56"),
		PaymentMethod: entity.PaymentCash,
		AmountPaid:    dec("10.00"),
		Change:        dec("2.44"),
		CashierID:     "u1",
		CashierName:   "Ana",
		Timestamp:     ts,
	}
}

func commit(t *testing.T, s *session.Session, tx entity.Transaction) {
	t.Helper()
	_, err := s.BeginPayment()
	require.NoError(t, err)
	require.NoError(t, s.CommitPayment(tx))
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque y rehidratación
// ──────────────────────────────────────────────────────────────────────────────

// Sin almacenamiento previo la sesión arranca con estado por defecto.
func TestNew_AlmacenamientoAusente(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())

	assert.Empty(t, s.CartLines())
	assert.Equal(t, 0, s.TransactionCount())
	assert.Equal(t, "USD", s.Settings().Currency)
	assert.False(t, s.Auth().IsAuthenticated)
}

// Round-trip: guardar y recargar reproduce transacciones idénticas, con el
// timestamp restaurado como instante (no string) y el orden preservado.
func TestRoundTrip_TransaccionesIdenticas(t *testing.T) {
	store := newMemStore()
	s1 := session.New(store, testLogger(), defaults())

	ts1 := time.Date(2025, 8, 30, 10, 15, 0, 123456000, time.UTC)
	ts2 := time.Date(2025, 8, 31, 9, 0, 42, 0, time.UTC)
	require.NoError(t, s1.AddItem(producto("p1", "Café", "3.50")))
	commit(t, s1, transaccion("tx-1", ts1))
	require.NoError(t, s1.AddItem(producto("p1", "Café", "3.50")))
	commit(t, s1, transaccion("tx-2", ts2))

	// Proceso nuevo, mismo almacenamiento.
	s2 := session.New(store, testLogger(), defaults())

	txs := s2.Transactions(0, 0)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-2", txs[0].ID, "más reciente primero")
	assert.Equal(t, "tx-1", txs[1].ID)
	assert.True(t, txs[0].Timestamp.Equal(ts2), "el instante debe restaurarse fielmente")
	assert.True(t, txs[1].Timestamp.Equal(ts1))

	orig := transaccion("tx-1", ts1)
	assert.Equal(t, orig.ReceiptNumber, txs[1].ReceiptNumber)
	assert.True(t, txs[1].Total.Equal(orig.Total))
	assert.True(t, txs[1].Change.Equal(orig.Change))
	require.Len(t, txs[1].Items, 1)
	assert.True(t, txs[1].Items[0].UnitPrice.Equal(dec("3.50")))
	assert.Equal(t, 2, txs[1].Items[0].Quantity)
}

// El carrito a medio armar sobrevive un reinicio.
func TestRoundTrip_CarritoPersistido(t *testing.T) {
	store := newMemStore()
	s1 := session.New(store, testLogger(), defaults())
	require.NoError(t, s1.AddItem(producto("p1", "Café", "3.50")))
	require.NoError(t, s1.AddItem(producto("p1", "Café", "3.50")))
	require.NoError(t, s1.AddItem(producto("p2", "Pan", "1.20")))

	s2 := session.New(store, testLogger(), defaults())
	lines := s2.CartLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	sub, tax, total := s2.CartTotals()
	assert.True(t, sub.Equal(dec("8.20")))
	assert.True(t, total.Sub(tax).Equal(sub))
}

// Documento con timestamp no parseable: la clave degrada a default y la
// sesión arranca igual (PersistenceError nunca es fatal).
func TestRehidratacion_TimestampCorrupto(t *testing.T) {
	store := newMemStore()
	store.docs[repository.StateKeyTransactions] = []byte(
		`{"transactions":[{"id":"tx-1","total":"7.56","timestamp":"ayer por la tarde"}]}`)

	s := session.New(store, testLogger(), defaults())
	assert.Equal(t, 0, s.TransactionCount(), "registro corrupto degrada a vacío")
}

// Documento parcial: campos desconocidos se ignoran, faltantes quedan en
// su valor por defecto.
func TestRehidratacion_DocumentoParcial(t *testing.T) {
	store := newMemStore()
	store.docs[repository.StateKeyCart] = []byte(
		`{"items":[{"id":"l1","productId":"p1","name":"Café","unitPrice":"3.50","quantity":1,"campoFuturo":true}],"otraCosa":1}`)

	s := session.New(store, testLogger(), defaults())
	lines := s.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Café", lines[0].Name)
}

// Carrito persistido que viola invariantes se descarta, no se auto-corrige.
func TestRehidratacion_CarritoConDuplicados(t *testing.T) {
	store := newMemStore()
	store.docs[repository.StateKeyCart] = []byte(
		`{"items":[{"id":"l1","productId":"p1","unitPrice":"1","quantity":1},{"id":"l2","productId":"p1","unitPrice":"1","quantity":1}]}`)

	s := session.New(store, testLogger(), defaults())
	assert.Empty(t, s.CartLines())
}

// Configuración inválida persistida degrada a la default.
func TestRehidratacion_ConfiguracionInvalida(t *testing.T) {
	store := newMemStore()
	store.docs[repository.StateKeySettings] = []byte(
		`{"settings":{"taxRate":"3.7","currency":"PESOS"}}`)

	s := session.New(store, testLogger(), defaults())
	assert.Equal(t, "USD", s.Settings().Currency)
	assert.True(t, s.Settings().TaxRate.Equal(dec("0.08")))
}

// La sesión de autenticación se rehidrata con createdAt como instante.
func TestRehidratacion_SesionAuth(t *testing.T) {
	store := newMemStore()
	s1 := session.New(store, testLogger(), defaults())
	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	s1.SetAuthenticated(&entity.User{ID: "u1", Name: "Ana", Role: entity.RoleCajero, CreatedAt: created})

	s2 := session.New(store, testLogger(), defaults())
	auth := s2.Auth()
	require.True(t, auth.IsAuthenticated)
	require.NotNil(t, auth.User)
	assert.Equal(t, "Ana", auth.User.Name)
	assert.True(t, auth.User.CreatedAt.Equal(created))
	assert.Empty(t, auth.User.PasswordHash, "el hash nunca se persiste en la sesión")
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del cobro y durabilidad
// ──────────────────────────────────────────────────────────────────────────────

// Con un cobro en vuelo el carrito queda congelado.
func TestBeginPayment_CongelaElCarrito(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	require.NoError(t, s.AddItem(producto("p1", "Café", "3.50")))

	_, err := s.BeginPayment()
	require.NoError(t, err)

	assert.ErrorIs(t, s.AddItem(producto("p2", "Pan", "1.20")), domain.ErrPaymentInFlight)
	assert.ErrorIs(t, s.RemoveItem("p1"), domain.ErrPaymentInFlight)
	assert.ErrorIs(t, s.UpdateQuantity("p1", 3), domain.ErrPaymentInFlight)
	assert.ErrorIs(t, s.ClearCart(), domain.ErrPaymentInFlight)

	_, err = s.BeginPayment()
	assert.ErrorIs(t, err, domain.ErrPaymentInFlight, "no hay cobros anidados")
}

func TestBeginPayment_CarritoVacio(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	_, err := s.BeginPayment()
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// Abort regresa a Idle con el carrito intacto y sin efectos secundarios.
func TestAbortPayment_SinEfectos(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	require.NoError(t, s.AddItem(producto("p1", "Café", "3.50")))

	_, err := s.BeginPayment()
	require.NoError(t, err)
	require.NoError(t, s.AbortPayment())

	assert.Len(t, s.CartLines(), 1, "el carrito no cambia al abandonar el cobro")
	assert.Equal(t, 0, s.TransactionCount())
	require.NoError(t, s.AddItem(producto("p2", "Pan", "1.20")), "el carrito queda descongelado")

	assert.ErrorIs(t, s.AbortPayment(), domain.ErrConflict, "abortar sin cobro en vuelo")
}

// Tras el commit el carrito queda vacío y la transacción guardada es una
// copia profunda: mutar el carrito después no la altera.
func TestCommitPayment_SnapshotProfundo(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	cafe := producto("p1", "Café", "3.50")
	require.NoError(t, s.AddItem(cafe))
	require.NoError(t, s.AddItem(cafe))

	snap, err := s.BeginPayment()
	require.NoError(t, err)
	tx := transaccion("tx-1", time.Now())
	tx.Items = snap
	require.NoError(t, s.CommitPayment(tx))

	assert.Empty(t, s.CartLines(), "el carrito se vacía al cerrar la venta")

	// Nueva venta sobre el mismo producto.
	require.NoError(t, s.AddItem(cafe))
	require.NoError(t, s.UpdateQuantity("p1", 9))

	stored := s.TransactionByID("tx-1")
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity, "la transacción guardada es inmutable")

	assert.Nil(t, s.TransactionByID("no-existe"))
}

func TestCommitPayment_SinCobroEnVuelo(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	assert.ErrorIs(t, s.CommitPayment(transaccion("tx", time.Now())), domain.ErrConflict)
}

// Un fallo de escritura no aborta la operación en memoria.
func TestSave_FalloDeEscrituraNoEsFatal(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disco lleno")
	s := session.New(store, testLogger(), defaults())

	require.NoError(t, s.AddItem(producto("p1", "Café", "3.50")))
	assert.Len(t, s.CartLines(), 1, "la mutación en memoria sobrevive al fallo de persistencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas del registro
// ──────────────────────────────────────────────────────────────────────────────

func TestTransactionsByDateRange(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	day1 := time.Date(2025, 8, 29, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)
	for i, ts := range []time.Time{day1, day2, day3} {
		require.NoError(t, s.AddItem(producto("p1", "Café", "3.50")))
		commit(t, s, transaccion([]string{"a", "b", "c"}[i], ts))
	}

	got := s.TransactionsByDateRange(
		time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	todos := s.TransactionsByDateRange(day1, day3.Add(time.Hour))
	require.Len(t, todos, 3)
	assert.Equal(t, "c", todos[0].ID, "el rango preserva el orden más reciente primero")
}

func TestTransactions_Paginacion(t *testing.T) {
	s := session.New(newMemStore(), testLogger(), defaults())
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddItem(producto("p1", "Café", "3.50")))
		commit(t, s, transaccion(id, time.Now()))
	}

	page := s.Transactions(2, 0)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)

	page = s.Transactions(2, 2)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].ID)

	assert.Empty(t, s.Transactions(2, 9))
}
