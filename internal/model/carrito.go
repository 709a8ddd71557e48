package model

import "github.com/shopspring/decimal"

// ItemCarrito is one line of an open cart. Precio is snapshotted when the
// product is added; repeated adds of the same product merge into one line.
type ItemCarrito struct {
	ProductoID string          `json:"producto_id"`
	Codigo     string          `json:"codigo"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
}

// Carrito is the per-session sale in progress. It lives in Redis keyed by
// session id and is discarded once the sale is finalized or the TTL expires.
type Carrito struct {
	Items         []ItemCarrito   `json:"items"`
	ClienteID     *string         `json:"cliente_id,omitempty"`
	MetodoPago    string          `json:"metodo_pago"`
	Observaciones string          `json:"observaciones"`
	Descuento     decimal.Decimal `json:"descuento"`
}

// Subtotal sums precio*cantidad over all lines.
func (c *Carrito) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}
	return total
}

// Agregar merges an item into the cart, adding quantities when the product
// is already present.
func (c *Carrito) Agregar(item ItemCarrito) {
	for i := range c.Items {
		if c.Items[i].ProductoID == item.ProductoID {
			c.Items[i].Cantidad += item.Cantidad
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Quitar removes the line for the given product. Returns false when the
// product is not in the cart.
func (c *Carrito) Quitar(productoID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductoID == productoID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
