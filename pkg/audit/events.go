package audit

import (
	"fmt"
	"strconv"
)

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func severity(success bool) Severity {
	if success {
		return SeverityNotice
	}
	return SeverityWarning
}

func withError(msg, errMsg string) string {
	if errMsg == "" {
		return msg
	}
	return msg + ": " + errMsg
}

// ParameterEvent records a change to the parameters of a motor under a
// PLC model. Operation is "create", "update" or "delete"; delete events
// leave the motor unset.
type ParameterEvent struct {
	Operation    string
	ClientIP     string
	EquipmentID  int
	MotorNumber  int
	PLC          int
	Success      bool
	ErrorMessage string
}

func (e ParameterEvent) MessageID() string {
	return "parameter"
}

func (e ParameterEvent) target() string {
	if e.EquipmentID == 0 && e.MotorNumber == 0 {
		return fmt.Sprintf("parameters of plc model %d", e.PLC)
	}
	return fmt.Sprintf("parameters of motor %d/%d under plc model %d", e.EquipmentID, e.MotorNumber, e.PLC)
}

func (e ParameterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd %s", e.ClientIP, e.Operation, e.target())
	}
	return withError(fmt.Sprintf("%s tried to %s %s", e.ClientIP, e.Operation, e.target()), e.ErrorMessage)
}

func (e ParameterEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ParameterEvent) Facility() int {
	return FacilityLocal0
}

func (e ParameterEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDPLC: {
			"model": strconv.Itoa(e.PLC),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.EquipmentID != 0 || e.MotorNumber != 0 {
		sd[SDIDSubject] = map[string]string{
			"equipment": strconv.Itoa(e.EquipmentID),
			"motor":     strconv.Itoa(e.MotorNumber),
		}
	}
	return sd
}

// FDCConfigEvent records an update of the FDC broker configuration.
// Credentials are never part of the event.
type FDCConfigEvent struct {
	ClientIP     string
	Host         string
	Topic        string
	Success      bool
	ErrorMessage string
}

func (e FDCConfigEvent) MessageID() string {
	return "fdc-config"
}

func (e FDCConfigEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s updated the fdc configuration (host %s, topic %s)", e.ClientIP, e.Host, e.Topic)
	}
	return withError(fmt.Sprintf("%s tried to update the fdc configuration", e.ClientIP), e.ErrorMessage)
}

func (e FDCConfigEvent) Severity() Severity {
	return severity(e.Success)
}

func (e FDCConfigEvent) Facility() int {
	return FacilityLocal0
}

func (e FDCConfigEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"host":  e.Host,
			"topic": e.Topic,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "update",
			"result":    result(e.Success),
		},
	}
}

// PLCLogEvent records a batch of PLC values ingested for one timestamp.
type PLCLogEvent struct {
	ClientIP     string
	Timestamp    string
	Inserted     int
	Skipped      int
	Success      bool
	ErrorMessage string
}

func (e PLCLogEvent) MessageID() string {
	return "plc-log"
}

func (e PLCLogEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s logged %d plc values at %s (%d skipped)", e.ClientIP, e.Inserted, e.Timestamp, e.Skipped)
	}
	return withError(fmt.Sprintf("%s tried to log plc values at %s", e.ClientIP, e.Timestamp), e.ErrorMessage)
}

func (e PLCLogEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e PLCLogEvent) Facility() int {
	return FacilityUser
}

func (e PLCLogEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDPLC: {
			"timestamp": e.Timestamp,
			"inserted":  strconv.Itoa(e.Inserted),
			"skipped":   strconv.Itoa(e.Skipped),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "insert",
			"result":    result(e.Success),
		},
	}
}
