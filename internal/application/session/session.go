// Package session es el dueño del estado de la caja: el carrito, el
// registro de transacciones, la configuración vigente y la sesión del
// cajero. Reemplaza los "stores" globales por un objeto explícito que se
// inyecta por constructor a los componentes que lo necesitan.
//
// Persistencia: cada mutación confirmada dispara un Save del documento
// correspondiente. Un fallo de escritura no aborta la operación en memoria
// (solo se pierde durabilidad) pero se registra en el log. La carga ocurre
// una sola vez al construir la sesión y nunca impide arrancar: estado
// ausente o corrupto degrada a valores por defecto.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/cart"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/money"
	"github.com/jhoicas/caja-pos-api/internal/domain/repository"
	"github.com/jhoicas/caja-pos-api/pkg/logger"
)

// AuthState es el snapshot persistido de la sesión de autenticación.
type AuthState struct {
	User            *entity.User // sin PasswordHash; solo identidad
	IsAuthenticated bool
}

// Session serializa con un mutex el acceso al estado de la única caja del
// proceso. inFlight marca el estado Processing del cobro: mientras esté
// activo, toda mutación del carrito se rechaza.
type Session struct {
	mu       sync.Mutex
	cart     *cart.Engine
	txs      []entity.Transaction // orden: más reciente primero
	settings entity.StoreSettings
	auth     AuthState
	inFlight bool

	store repository.StateRepository
	log   *logger.Logger
}

// New construye la sesión rehidratando el estado persistido. defaults se
// usa cuando no hay configuración guardada o la guardada es inválida.
func New(store repository.StateRepository, log *logger.Logger, defaults entity.StoreSettings) *Session {
	s := &Session{
		cart:     cart.New(),
		settings: defaults,
		store:    store,
		log:      log,
	}
	s.rehydrate(defaults)
	return s
}

// ── Carrito ──────────────────────────────────────────────────────────────────

// AddItem agrega el producto al carrito y persiste. Rechazado con
// ErrPaymentInFlight si hay un cobro en proceso.
func (s *Session) AddItem(p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrPaymentInFlight
	}
	s.cart.AddItem(p)
	s.saveCart()
	return nil
}

// RemoveItem elimina la línea del producto y persiste.
func (s *Session) RemoveItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrPaymentInFlight
	}
	s.cart.RemoveItem(productID)
	s.saveCart()
	return nil
}

// UpdateQuantity fija la cantidad de la línea y persiste.
func (s *Session) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrPaymentInFlight
	}
	s.cart.UpdateQuantity(productID, quantity)
	s.saveCart()
	return nil
}

// ClearCart vacía el carrito y persiste.
func (s *Session) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrPaymentInFlight
	}
	s.cart.Clear()
	s.saveCart()
	return nil
}

// CartLines devuelve una copia de las líneas en orden de inserción.
func (s *Session) CartLines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// CartTotals devuelve subtotal, impuesto y total con la configuración vigente.
func (s *Session) CartTotals() (subtotal, tax, total decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal = s.cart.Subtotal()
	tax = money.CalculateTax(subtotal, s.settings.TaxRate)
	total = money.CalculateTotal(subtotal, tax)
	return subtotal, tax, total
}

// ── Máquina de estados del cobro ─────────────────────────────────────────────

// BeginPayment transiciona Idle -> Processing y devuelve el snapshot de las
// líneas que quedan autorizadas. Guardas: carrito no vacío y ningún otro
// cobro en vuelo. Mientras dure Processing el carrito queda congelado.
func (s *Session) BeginPayment() ([]entity.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return nil, domain.ErrPaymentInFlight
	}
	if s.cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	s.inFlight = true
	return s.cart.Lines(), nil
}

// AbortPayment regresa Processing -> Idle sin efectos secundarios: el
// carrito queda exactamente como estaba. ErrConflict si no hay cobro en vuelo.
func (s *Session) AbortPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return domain.ErrConflict
	}
	s.inFlight = false
	return nil
}

// CommitPayment cierra Processing -> Committed: antepone la transacción al
// registro (más reciente primero), vacía el carrito y persiste ambos
// documentos. La transacción ya debe venir completa e inmutable.
func (s *Session) CommitPayment(tx entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return domain.ErrConflict
	}
	s.txs = append([]entity.Transaction{tx}, s.txs...)
	s.cart.Clear()
	s.inFlight = false
	s.saveCart()
	s.saveTransactions()
	return nil
}

// ── Registro de transacciones ────────────────────────────────────────────────

func cloneTx(tx entity.Transaction) entity.Transaction {
	tx.Items = entity.CloneLines(tx.Items)
	return tx
}

// Transactions devuelve una página del registro, más reciente primero.
func (s *Session) Transactions(limit, offset int) []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offset < 0 || offset >= len(s.txs) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(s.txs) {
		end = len(s.txs)
	}
	out := make([]entity.Transaction, 0, end-offset)
	for _, tx := range s.txs[offset:end] {
		out = append(out, cloneTx(tx))
	}
	return out
}

// TransactionCount devuelve el total de transacciones registradas.
func (s *Session) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// TransactionByID busca una transacción. (nil, no existe).
func (s *Session) TransactionByID(id string) *entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			c := cloneTx(tx)
			return &c
		}
	}
	return nil
}

// TransactionsByDateRange devuelve las transacciones con start <= ts < end,
// preservando el orden más reciente primero.
func (s *Session) TransactionsByDateRange(start, end time.Time) []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Transaction
	for _, tx := range s.txs {
		if !tx.Timestamp.Before(start) && tx.Timestamp.Before(end) {
			out = append(out, cloneTx(tx))
		}
	}
	return out
}

// ── Configuración ────────────────────────────────────────────────────────────

// Settings devuelve la configuración vigente de la tienda.
func (s *Session) Settings() entity.StoreSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings valida y persiste la nueva configuración.
func (s *Session) UpdateSettings(st entity.StoreSettings) error {
	if !st.Valid() {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
	s.saveSettings()
	return nil
}

// ── Sesión de autenticación ──────────────────────────────────────────────────

// SetAuthenticated registra al cajero autenticado y persiste el snapshot.
func (s *Session) SetAuthenticated(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.auth = AuthState{}
	} else {
		cp := *u
		cp.PasswordHash = ""
		s.auth = AuthState{User: &cp, IsAuthenticated: true}
	}
	s.saveAuth()
}

// ClearAuthenticated cierra la sesión del cajero y persiste.
func (s *Session) ClearAuthenticated() {
	s.SetAuthenticated(nil)
}

// Auth devuelve el snapshot de autenticación vigente.
func (s *Session) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.auth
	if st.User != nil {
		cp := *st.User
		st.User = &cp
	}
	return st
}

// ── Persistencia ─────────────────────────────────────────────────────────────

// save serializa y escribe un documento. El fallo no es fatal: la sesión
// continúa en memoria y solo se pierde durabilidad; queda en el log.
func (s *Session) save(key string, doc any) {
	payload, err := json.Marshal(doc)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("serializar estado de sesión")
		return
	}
	if err := s.store.Save(key, payload); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persistir estado de sesión")
	}
}

func (s *Session) saveCart() {
	s.save(repository.StateKeyCart, persistedCart{Items: toPersistedLines(s.cart.Lines())})
}

func (s *Session) saveTransactions() {
	doc := persistedTransactions{Transactions: make([]persistedTransaction, 0, len(s.txs))}
	for _, tx := range s.txs {
		doc.Transactions = append(doc.Transactions, toPersistedTransaction(tx))
	}
	s.save(repository.StateKeyTransactions, doc)
}

func (s *Session) saveSettings() {
	s.save(repository.StateKeySettings, persistedSettings{
		Settings: &persistedStoreSettings{TaxRate: s.settings.TaxRate, Currency: s.settings.Currency},
	})
}

func (s *Session) saveAuth() {
	doc := persistedAuth{IsAuthenticated: s.auth.IsAuthenticated}
	if s.auth.User != nil {
		doc.User = &persistedAuthUser{
			ID:        s.auth.User.ID,
			Email:     s.auth.User.Email,
			Name:      s.auth.User.Name,
			Role:      s.auth.User.Role,
			CreatedAt: formatInstant(s.auth.User.CreatedAt),
		}
	}
	s.save(repository.StateKeyAuth, doc)
}

// load lee y deserializa un documento. (false) si la clave no existe.
// Campos desconocidos se ignoran y los faltantes quedan en cero: el
// documento parcial se completa con defaults aguas arriba.
func (s *Session) load(key string, doc any) bool {
	payload, err := s.store.Load(key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("cargar estado de sesión")
		return false
	}
	if payload == nil {
		return false
	}
	if err := json.Unmarshal(payload, doc); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("estado persistido corrupto, se usa el valor por defecto")
		return false
	}
	return true
}

// rehydrate restaura carrito, transacciones, configuración y sesión de
// autenticación. Cualquier documento ausente, parcial o corrupto degrada a
// su valor por defecto; la sesión siempre arranca.
func (s *Session) rehydrate(defaults entity.StoreSettings) {
	var pc persistedCart
	if s.load(repository.StateKeyCart, &pc) {
		restored, err := cart.Restore(fromPersistedLines(pc.Items))
		if err != nil {
			s.log.Warn().Err(err).Msg("carrito persistido viola invariantes, se descarta")
		} else {
			s.cart = restored
		}
	}

	var pt persistedTransactions
	if s.load(repository.StateKeyTransactions, &pt) {
		txs := make([]entity.Transaction, 0, len(pt.Transactions))
		ok := true
		for _, p := range pt.Transactions {
			tx, err := fromPersistedTransaction(p)
			if err != nil {
				s.log.Warn().Err(err).Str("transaction_id", p.ID).Msg("registro de transacciones corrupto, se descarta")
				ok = false
				break
			}
			txs = append(txs, tx)
		}
		if ok {
			s.txs = txs
		}
	}

	var ps persistedSettings
	if s.load(repository.StateKeySettings, &ps) && ps.Settings != nil {
		st := entity.StoreSettings{TaxRate: ps.Settings.TaxRate, Currency: ps.Settings.Currency}
		if st.Valid() {
			s.settings = st
		} else {
			s.log.Warn().Str("currency", st.Currency).Msg("configuración persistida inválida, se usa la default")
			s.settings = defaults
		}
	}

	var pa persistedAuth
	if s.load(repository.StateKeyAuth, &pa) && pa.User != nil {
		createdAt, err := parseInstant(pa.User.CreatedAt)
		if err != nil {
			s.log.Warn().Err(err).Msg("sesión de autenticación corrupta, se descarta")
		} else {
			s.auth = AuthState{
				User: &entity.User{
					ID:        pa.User.ID,
					Email:     pa.User.Email,
					Name:      pa.User.Name,
					Role:      pa.User.Role,
					CreatedAt: createdAt,
				},
				IsAuthenticated: pa.IsAuthenticated,
			}
		}
	}
}
