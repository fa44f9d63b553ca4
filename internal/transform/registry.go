package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for the CLI
// and the API.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("raise_salary", createRaiseSalary)
	registry.Register("set_salary", createSetSalary)
	registry.Register("set_allowance", createSetAllowance)
	registry.Register("set_bonus_months", createSetBonusMonths)
	registry.Register("set_insurance", createSetInsurance)
	registry.Register("set_zakat", createSetZakat)
	registry.Register("set_status", createSetMaritalStatus)
	registry.Register("add_dependents", createAddDependents)
	registry.Register("set_npwp", createSetNPWP)
	registry.Register("set_method", createSetMethod)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "raise_salary:percent=10"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func boolParam(transform string, params map[string]string, key string) (bool, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return b, nil
}

// Factory functions for each transform

func createRaiseSalary(params map[string]string) (InputTransform, error) {
	pct, err := decimalParam("raise_salary", params, "percent")
	if err != nil {
		return nil, err
	}
	return &RaiseSalary{Percent: pct}, nil
}

func createSetSalary(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_salary", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSalary{Amount: amount}, nil
}

func createSetAllowance(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_allowance", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetAllowance{Amount: amount}, nil
}

func createSetBonusMonths(params map[string]string) (InputTransform, error) {
	months, err := decimalParam("set_bonus_months", params, "months")
	if err != nil {
		return nil, err
	}
	return &SetBonusMonths{Months: months}, nil
}

func createSetInsurance(params map[string]string) (InputTransform, error) {
	include, err := boolParam("set_insurance", params, "include")
	if err != nil {
		return nil, err
	}
	return &SetInsurance{Include: include}, nil
}

func createSetZakat(params map[string]string) (InputTransform, error) {
	monthly, err := decimalParam("set_zakat", params, "monthly")
	if err != nil {
		return nil, err
	}
	return &SetZakat{Monthly: monthly}, nil
}

func createSetMaritalStatus(params map[string]string) (InputTransform, error) {
	raw, err := requireParam("set_status", params, "status")
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseMaritalStatus(raw)
	if err != nil {
		return nil, err
	}
	return &SetMaritalStatus{Status: status}, nil
}

func createAddDependents(params map[string]string) (InputTransform, error) {
	raw, err := requireParam("add_dependents", params, "count")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid count value: %w", err)
	}
	return &AddDependents{Delta: n}, nil
}

func createSetNPWP(params map[string]string) (InputTransform, error) {
	has, err := boolParam("set_npwp", params, "has")
	if err != nil {
		return nil, err
	}
	return &SetNPWP{Has: has}, nil
}

func createSetMethod(params map[string]string) (InputTransform, error) {
	raw, err := requireParam("set_method", params, "method")
	if err != nil {
		return nil, err
	}
	method, err := domain.ParseMethod(raw)
	if err != nil {
		return nil, err
	}
	return &SetMethod{Method: method}, nil
}
