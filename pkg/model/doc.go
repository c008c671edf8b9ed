// Package model defines the database models of the query server.
//
// The models are GORM structs mapped onto five PostgreSQL databases. Each
// database is migrated independently from db/migrations/<name>.
//
// # Service
//
//   - Line, Equipment, Motor: the plant layout
//   - MotorBearing, ExternalBearing, TensionBearing, Variable: per-PLC
//     motor parameters
//   - UniformSpeedThreshold, VariableSpeedThreshold: per-PLC diagnosis
//     thresholds
//
// # Feature
//
//   - Trigger: acquisition triggers with the first phase RMS
//   - UniformSpeedExternalFeature (u3e), UniformSpeedTensionFeature (u3t),
//     VariableSpeedPhase1Feature (v1), VariableSpeedPhase3Feature (v3)
//
// # Metadata, PLC and FDC
//
//   - Metadata: one row per raw waveform stored in object storage
//   - PLCModel, MemoryMapping, PLCLog: PLC production models and the
//     memory-mapped values reported by the PLC gateway
//   - FDCConfig: the FDC broker connection, a single row with id 1
//
// Motors are classified by Category, generated with enumer.
package model
