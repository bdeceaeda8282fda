// Package domain contains the core entities of the task tracker: User,
// Category, Priority and Task. Entities carry their own validation; identity
// and timestamps are assigned by the persistence layer.
package domain
