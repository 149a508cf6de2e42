// Package order provides the Order aggregate: an order root owning its
// Delivery and an ordered list of OrderItems, and referencing the Member who
// placed it.
//
// Lifecycle:
//
//	ORDER ──cancel──> CANCEL        (forbidden once the delivery is COMP)
//	READY ──complete──> COMP        (delivery, forbidden once the order is CANCEL)
//
// Creating an order reserves stock for every line through a Ledger, all or
// nothing. Cancelling releases every line back to its item.
//
// Relations are held in Relation slots that know whether they are loaded. A
// lazily bound slot fetches on first Get while its unit of work is active; the
// plain accessors (Member, Delivery, OrderItems) never fetch and report an
// unloaded relation as errs.LoaderUsageError.
package order
