package integration

import (
	"fmt"

	"github.com/cucumber/godog"
)

func registerDatabaseSteps(sc *godog.ScenarioContext, s *StepsContext) {
	sc.Step(`^the PLC log should have (\d+) rows? with value "([^"]*)"$`, s.thePLCLogShouldHaveRows)
	sc.Step(`^the object store should hold (\d+) objects?$`, s.theObjectStoreShouldHold)
}

func (s *StepsContext) thePLCLogShouldHaveRows(n int, value string) error {
	var count int64
	if err := s.tc.Conns.PLC.Table("log").Where("value = ?", value).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(n) {
		return fmt.Errorf("expected %d log rows with value %q, got %d", n, value, count)
	}
	return nil
}

func (s *StepsContext) theObjectStoreShouldHold(n int) error {
	objects := s.tc.Instance.Objects
	if objects == nil {
		// The binary talks to a real object store.
		return godog.ErrSkip
	}
	if got := objects.Len(); got != n {
		return fmt.Errorf("expected %d objects, got %d", n, got)
	}
	return nil
}
