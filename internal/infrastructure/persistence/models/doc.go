// Package models contains GORM-specific persistence models that map to
// database tables. These models are separate from domain entities to keep
// the domain layer free from ORM concerns.
//
// Key principles:
// 1. Domain aggregates with nested value objects stay free of GORM tags
// 2. Persistence models carry the GORM annotations and jsonb serialization
// 3. Mappers convert between domain aggregates and persistence models
//
// Structure:
// - base.go: shared base model fields
// - property.go: property aggregate and its portal status rows
//
// Clients and contracts are flat records and are persisted directly from
// their domain structs.
package models
