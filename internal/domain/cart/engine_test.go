package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/cart"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func producto(id, name, price string) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: name, Price: dec(price), Stock: 10, IsActive: true}
}

// verificaInvariantes: nunca dos líneas con el mismo producto, cantidades >= 1.
func verificaInvariantes(t *testing.T, e *cart.Engine) {
	t.Helper()
	seen := map[string]bool{}
	for _, l := range e.Lines() {
		assert.False(t, seen[l.ProductID], "línea duplicada para %s", l.ProductID)
		seen[l.ProductID] = true
		assert.GreaterOrEqual(t, l.Quantity, 1, "cantidad inválida en %s", l.ProductID)
	}
}

func TestAddItem_NuevaLineaYLuegoIncremento(t *testing.T) {
	e := cart.New()
	cafe := producto("p1", "Café", "3.50")

	e.AddItem(cafe)
	e.AddItem(cafe)

	lines := e.Lines()
	require.Len(t, lines, 1, "agregar el mismo producto dos veces incrementa, no duplica")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(dec("3.50")))
	assert.NotEqual(t, lines[0].ID, lines[0].ProductID, "la línea tiene ID propio")
	verificaInvariantes(t, e)
}

// El precio se captura al agregar: un cambio posterior en el catálogo
// no afecta la línea ya existente.
func TestAddItem_CapturaPrecioAlAgregar(t *testing.T) {
	e := cart.New()
	p := producto("p1", "Café", "3.50")
	e.AddItem(p)

	p.Price = dec("9.99") // el catálogo subió el precio
	e.AddItem(p)

	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(dec("3.50")),
		"el precio capturado no cambia retroactivamente")
	assert.True(t, e.Subtotal().Equal(dec("7.00")))
}

func TestAddItem_PreservaOrdenDeInsercion(t *testing.T) {
	e := cart.New()
	e.AddItem(producto("p1", "Café", "3.50"))
	e.AddItem(producto("p2", "Pan", "1.20"))
	e.AddItem(producto("p3", "Leche", "2.80"))
	e.AddItem(producto("p2", "Pan", "1.20"))

	lines := e.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"},
		[]string{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID})
}

func TestRemoveItem_EliminaYEsNoOpSiNoExiste(t *testing.T) {
	e := cart.New()
	e.AddItem(producto("p1", "Café", "3.50"))

	e.RemoveItem("p1")
	assert.True(t, e.IsEmpty())

	e.RemoveItem("p1") // no-op, no error
	assert.True(t, e.IsEmpty())
}

func TestUpdateQuantity_FijaValorExacto(t *testing.T) {
	e := cart.New()
	e.AddItem(producto("p1", "Café", "3.50"))

	e.UpdateQuantity("p1", 5)
	require.Len(t, e.Lines(), 1)
	assert.Equal(t, 5, e.Lines()[0].Quantity, "la cantidad se fija, no se incrementa")
	verificaInvariantes(t, e)
}

// Cantidad 0 o negativa elimina la línea; repetir la operación es idempotente.
func TestUpdateQuantity_CeroEliminaYEsIdempotente(t *testing.T) {
	e := cart.New()
	e.AddItem(producto("p1", "Café", "3.50"))

	e.UpdateQuantity("p1", 0)
	assert.True(t, e.IsEmpty(), "cantidad 0 elimina la línea")

	e.UpdateQuantity("p1", 0) // segunda vez: no-op
	assert.True(t, e.IsEmpty())

	e.UpdateQuantity("p1", -3)
	assert.True(t, e.IsEmpty())
}

func TestUpdateQuantity_NoCreaLineas(t *testing.T) {
	e := cart.New()
	e.UpdateQuantity("fantasma", 4)
	assert.True(t, e.IsEmpty(), "actualizar un producto inexistente no crea línea")
}

func TestSubtotalTaxTotal(t *testing.T) {
	e := cart.New()
	assert.True(t, e.Subtotal().IsZero(), "carrito vacío subtotal 0")

	cafe := producto("p1", "Café", "3.50")
	e.AddItem(cafe)
	e.AddItem(cafe)

	rate := dec("0.08")
	assert.True(t, e.Subtotal().Equal(dec("7.00")))
	assert.True(t, e.Tax(rate).Equal(dec("0.56")))
	assert.True(t, e.Total(rate).Equal(dec("7.56")))
}

// Secuencia arbitraria de operaciones: los invariantes se mantienen en
// cada salida.
func TestSecuenciaDeOperaciones_MantieneInvariantes(t *testing.T) {
	e := cart.New()
	p1 := producto("p1", "Café", "3.50")
	p2 := producto("p2", "Pan", "1.20")

	ops := []func(){
		func() { e.AddItem(p1) },
		func() { e.AddItem(p2) },
		func() { e.UpdateQuantity("p1", 7) },
		func() { e.AddItem(p1) },
		func() { e.RemoveItem("p2") },
		func() { e.AddItem(p2) },
		func() { e.UpdateQuantity("p2", 0) },
		func() { e.UpdateQuantity("nadie", 3) },
		func() { e.Clear() },
		func() { e.AddItem(p2) },
	}
	for i, op := range ops {
		op()
		verificaInvariantes(t, e)
		_ = i
	}
	require.Len(t, e.Lines(), 1)
	assert.Equal(t, "p2", e.Lines()[0].ProductID)
}

// Lines devuelve una copia defensiva: mutar el resultado no toca el carrito.
func TestLines_CopiaDefensiva(t *testing.T) {
	e := cart.New()
	e.AddItem(producto("p1", "Café", "3.50"))

	lines := e.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, e.Lines()[0].Quantity)
}

func TestRestore_ValidaInvariantes(t *testing.T) {
	good := []entity.CartLine{
		{ID: "l1", ProductID: "p1", Name: "Café", UnitPrice: dec("3.50"), Quantity: 2},
	}
	e, err := cart.Restore(good)
	require.NoError(t, err)
	assert.True(t, e.Subtotal().Equal(dec("7.00")))

	dup := []entity.CartLine{
		{ID: "l1", ProductID: "p1", UnitPrice: dec("1"), Quantity: 1},
		{ID: "l2", ProductID: "p1", UnitPrice: dec("1"), Quantity: 1},
	}
	_, err = cart.Restore(dup)
	assert.ErrorIs(t, err, domain.ErrIntegrity, "líneas duplicadas deben fallar ruidosamente")

	zero := []entity.CartLine{{ID: "l1", ProductID: "p1", UnitPrice: dec("1"), Quantity: 0}}
	_, err = cart.Restore(zero)
	assert.ErrorIs(t, err, domain.ErrIntegrity, "cantidad 0 persistida es un defecto")
}
