// Package audit records changes made through the query server.
//
// Every parameter create, update and delete, every FDC configuration
// update and every PLC log ingest is written as an RFC5424 syslog line
// to the audit logger and, when AUDIT_DATABASE_URL is set, to the
// messages table of the audit database.
//
// # Usage
//
//	audit.Log(audit.ParameterEvent{
//		Operation:   "update",
//		ClientIP:    r.RemoteAddr,
//		EquipmentID: 1,
//		MotorNumber: 3,
//		PLC:         5,
//		Success:     true,
//	})
//
// Audit logging is on by default and can be switched off with
// QUERY_SERVER_AUDIT_ENABLED=false.
package audit
