// Package session composes the subscription resolver and the deletion guard
// on top of a store subscription, producing the View the presentation layer
// renders and guarding workspace deletion.
package session
