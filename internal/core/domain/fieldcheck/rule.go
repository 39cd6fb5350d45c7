package fieldcheck

// Rule validates one raw field value.
type Rule func(value string) Result

func NumericID(required bool, maxLength int) Rule {
	return func(value string) Result {
		return ValidateNumericID(value, required, maxLength)
	}
}

func Strength() Rule {
	return ValidateStrength
}

func EmailShape(required bool) Rule {
	return func(value string) Result {
		return ValidateEmailShape(value, required)
	}
}

func NameShape(required bool, minLength int) Rule {
	return func(value string) Result {
		return ValidateNameShape(value, required, minLength)
	}
}

// Labelled prefixes every message of rule with "<label>: ".
func Labelled(label string, rule Rule) Rule {
	return func(value string) Result {
		res := rule(value)
		if res.Valid || label == "" {
			return res
		}
		errs := make([]string, len(res.Errors))
		for i, msg := range res.Errors {
			errs[i] = label + ": " + msg
		}
		return Result{Valid: false, Errors: errs}
	}
}

// All runs every rule and concatenates their messages in order.
func All(rules ...Rule) Rule {
	return func(value string) Result {
		var errs []string
		for _, rule := range rules {
			errs = append(errs, rule(value).Errors...)
		}
		return result(errs)
	}
}
