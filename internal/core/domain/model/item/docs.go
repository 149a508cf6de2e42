// Package item provides the Item entity: a sellable product with a price, a
// non-negative stock quantity and a kind-specific payload (book, album or
// movie).
//
// Stock is mutated only through RemoveStock and AddStock. The item remembers
// the stock it was loaded with so the persistence layer can write the change
// as a guarded delta instead of an absolute value.
package item
