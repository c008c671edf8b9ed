package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the query server is running$`, s.theQueryServerIsRunning)

	// Request steps
	sc.Step(`^I (GET|DELETE) "([^"]*)"$`, s.iSendRequest)
	sc.Step(`^I (POST|PUT) "([^"]*)" with:$`, s.iSendRequestWithBody)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response body should be "([^"]*)"$`, s.theResponseBodyShouldBe)
	sc.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, s.theJSONFieldShouldBe)
	sc.Step(`^the JSON field "([^"]*)" should have (\d+) items?$`, s.theJSONFieldShouldHaveItems)
	sc.Step(`^the response should be a list of (\d+) items?$`, s.theResponseShouldBeAList)
	sc.Step(`^the error should be "([^"]*)"$`, s.theErrorShouldBe)
	sc.Step(`^the response should be the string "([^"]*)"$`, s.theResponseShouldBeTheString)

	// Database steps
	registerDatabaseSteps(sc, s)
}

func (s *StepsContext) theQueryServerIsRunning() error {
	return nil
}

func (s *StepsContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) iSendRequest(method, path string) error {
	return s.do(method, path, nil)
}

func (s *StepsContext) iSendRequestWithBody(method, path string, body *godog.DocString) error {
	return s.do(method, path, bytes.NewReader([]byte(body.Content)))
}

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldBe(expected string) error {
	actual := strings.TrimSpace(string(s.responseBody))
	if actual != expected {
		return fmt.Errorf("expected body %q, got %q", expected, actual)
	}
	return nil
}

func (s *StepsContext) theJSONFieldShouldBe(path, expected string) error {
	value, err := s.lookup(path)
	if err != nil {
		return err
	}
	if actual := fmt.Sprint(value); actual != expected {
		return fmt.Errorf("expected %s to be %q, got %q", path, expected, actual)
	}
	return nil
}

func (s *StepsContext) theJSONFieldShouldHaveItems(path string, n int) error {
	value, err := s.lookup(path)
	if err != nil {
		return err
	}
	return hasItems(path, value, n)
}

func (s *StepsContext) theResponseShouldBeAList(n int) error {
	var value interface{}
	if err := json.Unmarshal(s.responseBody, &value); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return hasItems("response", value, n)
}

func (s *StepsContext) theErrorShouldBe(expected string) error {
	return s.theJSONFieldShouldBe("error", expected)
}

func (s *StepsContext) theResponseShouldBeTheString(expected string) error {
	var actual string
	if err := json.Unmarshal(s.responseBody, &actual); err != nil {
		return fmt.Errorf("response is not a JSON string: %w", err)
	}
	if actual != expected {
		return fmt.Errorf("expected %q, got %q", expected, actual)
	}
	return nil
}

func hasItems(path string, value interface{}, n int) error {
	switch v := value.(type) {
	case []interface{}:
		if len(v) != n {
			return fmt.Errorf("expected %s to have %d items, got %d", path, n, len(v))
		}
	case map[string]interface{}:
		if len(v) != n {
			return fmt.Errorf("expected %s to have %d keys, got %d", path, n, len(v))
		}
	default:
		return fmt.Errorf("%s is not a list or an object", path)
	}
	return nil
}

// lookup follows a dotted path through the JSON response. Numeric
// segments index lists.
func (s *StepsContext) lookup(path string) (interface{}, error) {
	var value interface{}
	if err := json.Unmarshal(s.responseBody, &value); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	for _, segment := range strings.Split(path, ".") {
		switch v := value.(type) {
		case map[string]interface{}:
			next, ok := v[segment]
			if !ok {
				return nil, fmt.Errorf("%s not found in response", path)
			}
			value = next
		case []interface{}:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(v) {
				return nil, fmt.Errorf("%s not found in response", path)
			}
			value = v[i]
		default:
			return nil, fmt.Errorf("%s not found in response", path)
		}
	}
	return value, nil
}
