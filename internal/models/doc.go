// Package models defines the core domain models for the San Agustín
// community backend.
//
// # Entities
//
//   - Unit: a residential apartment, optionally linked to its resident
//   - Resident: an approved user signed in through an identity provider
//   - ParkingSlot: a unit's parking slot, or a visitor-flagged slot
//   - VisitorSpot: the dedicated pool of visitor parking
//   - CommonArea: a shared amenity bookable for a time window
//   - AmenityReservation / VisitorReservation: bookings over a resource
//   - Debt: an outstanding or settled due owed by a unit
//   - Registration: a sign-up waiting for administrator approval
//
// # Design Principles
//
//  1. Relationships are explicit ID fields, never pointers into other records.
//  2. An ID of zero means "not set" (no owning resident, no owning unit).
//  3. Snapshots of related records (e.g. the booked area) are filled in by
//     the reservation core on demand and are never persisted.
package models
