package wrapper

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time/date layouts mirror the EU-format-first convention used throughout
// this codebase: day before month when both are ambiguous.
var (
	timeLayouts = []string{
		"15:04:05.000",
		"15:04:05",
		"15:04",
		"3:04:05.000pm",
		"3:04:05.000PM",
		"3:04:05pm",
		"3:04:05PM",
		"3:04:05 pm",
		"3:04:05 PM",
		"3:04pm",
		"3:04PM",
		"3:04 pm",
		"3:04 PM",
	}

	dateLayouts = []string{
		"02/01/2006",
		"02-01-2006",
		"02.01.2006",
		"2/1/2006",
		"2-1-2006",
		"2.1.2006",
		"2006-01-02",
		"2006/01/02",
		"2 Jan 2006",
		"2 January 2006",
		"02 Jan 2006",
		"02 January 2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"Jan 02, 2006",
		"January 02, 2006",
	}

	tzOffsetRegex = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)
)

func parseTimezone(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)

	if s == "Z" || s == "UTC" {
		return time.UTC, nil
	}

	if matches := tzOffsetRegex.FindStringSubmatch(s); matches != nil {
		sign := 1
		if matches[1] == "-" {
			sign = -1
		}
		hours, _ := strconv.Atoi(matches[2])
		minutes, _ := strconv.Atoi(matches[3])
		offsetSeconds := sign * (hours*3600 + minutes*60)
		return time.FixedZone(s, offsetSeconds), nil
	}

	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s, err)
	}
	return loc, nil
}

func extractTimezone(s string) (string, *time.Location) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "Z") {
		return strings.TrimSuffix(s, "Z"), time.UTC
	}
	if strings.HasSuffix(s, " UTC") || strings.HasSuffix(s, "UTC") {
		return strings.TrimSuffix(strings.TrimSuffix(s, " UTC"), "UTC"), time.UTC
	}

	parts := strings.Split(s, " ")
	if len(parts) >= 2 {
		lastPart := parts[len(parts)-1]
		if strings.Contains(lastPart, "/") {
			if loc, err := time.LoadLocation(lastPart); err == nil {
				return strings.TrimSuffix(s, " "+lastPart), loc
			}
		}
	}

	if len(parts) >= 1 {
		lastPart := parts[len(parts)-1]
		if len(lastPart) >= 5 && (lastPart[0] == '+' || lastPart[0] == '-') {
			if loc, err := parseTimezone(lastPart); err == nil {
				withoutTz := strings.TrimSuffix(s, lastPart)
				withoutTz = strings.TrimSuffix(withoutTz, " ")
				return withoutTz, loc
			}
		}
	}

	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '+' || s[i] == '-' {
			if loc, err := parseTimezone(s[i:]); err == nil {
				return s[:i], loc
			}
			break
		}
	}

	return s, time.Local
}

func parseTimeValue(s string) (time.Time, error) {
	timeStr, loc := extractTimezone(s)
	timeStr = strings.TrimSpace(timeStr)

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, timeStr, loc); err == nil {
			return time.Date(1, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}

func parseDateValue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", s)
}

func parseDateTimeValue(s string) (time.Time, error) {
	dtStr, loc := extractTimezone(s)
	dtStr = strings.TrimSpace(dtStr)

	var datePart, timePart string
	if idx := strings.Index(dtStr, "T"); idx != -1 {
		datePart = dtStr[:idx]
		timePart = dtStr[idx+1:]
	} else {
		for i := len(dtStr) - 1; i >= 0; i-- {
			if dtStr[i] == ' ' {
				possibleTime := dtStr[i+1:]
				if strings.Contains(possibleTime, ":") {
					datePart = dtStr[:i]
					timePart = possibleTime
					break
				}
			}
		}
		if datePart == "" {
			return time.Time{}, fmt.Errorf("cannot parse %q as datetime: no separator found", s)
		}
	}

	var parsedDate time.Time
	var dateErr error
	for _, layout := range dateLayouts {
		parsedDate, dateErr = time.ParseInLocation(layout, datePart, loc)
		if dateErr == nil {
			break
		}
	}
	if dateErr != nil {
		return time.Time{}, fmt.Errorf("cannot parse date part %q: %w", datePart, dateErr)
	}

	var parsedTime time.Time
	var timeErr error
	for _, layout := range timeLayouts {
		parsedTime, timeErr = time.ParseInLocation(layout, timePart, loc)
		if timeErr == nil {
			break
		}
	}
	if timeErr != nil {
		return time.Time{}, fmt.Errorf("cannot parse time part %q: %w", timePart, timeErr)
	}

	return time.Date(
		parsedDate.Year(), parsedDate.Month(), parsedDate.Day(),
		parsedTime.Hour(), parsedTime.Minute(), parsedTime.Second(), parsedTime.Nanosecond(),
		loc,
	), nil
}

func parseBoolValue(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "enabled", "1":
		return true, nil
	case "false", "no", "off", "disabled", "0":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as bool", s)
	}
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	locationType = reflect.TypeOf((*time.Location)(nil))
)

// convertPrimitive converts a capture string to a non-custom builtin target
// type: numeric kinds, bool, string, time.Time and *time.Location.
func convertPrimitive(arg string, targetType reflect.Type) (reflect.Value, error) {
	if targetType == timeType {
		if dt, err := parseDateTimeValue(arg); err == nil {
			return reflect.ValueOf(dt), nil
		}
		if d, err := parseDateValue(arg); err == nil {
			return reflect.ValueOf(d), nil
		}
		if t, err := parseTimeValue(arg); err == nil {
			return reflect.ValueOf(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot parse %q as time.Time", arg)
	}

	if targetType == locationType {
		loc, err := parseTimezone(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(loc), nil
	}

	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(arg).Convert(targetType), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := targetType.Bits()
		v, err := strconv.ParseInt(arg, 10, bits)
		if err != nil {
			return reflect.Value{}, err
		}
		val := reflect.New(targetType).Elem()
		val.SetInt(v)
		return val, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := targetType.Bits()
		v, err := strconv.ParseUint(arg, 10, bits)
		if err != nil {
			return reflect.Value{}, err
		}
		val := reflect.New(targetType).Elem()
		val.SetUint(v)
		return val, nil

	case reflect.Float32, reflect.Float64:
		bits := targetType.Bits()
		v, err := strconv.ParseFloat(arg, bits)
		if err != nil {
			return reflect.Value{}, err
		}
		val := reflect.New(targetType).Elem()
		val.SetFloat(v)
		return val, nil

	case reflect.Bool:
		v, err := parseBoolValue(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %s", targetType.Kind())
	}
}

// convertCustomType resolves arg against a registered custom type's allowed
// values (case-insensitively) before converting it to the underlying kind.
func convertCustomType(arg string, targetType reflect.Type, allowedValues map[string]string) (reflect.Value, error) {
	actual := arg
	if allowedValues != nil {
		resolved, ok := allowedValues[strings.ToLower(arg)]
		if !ok {
			return reflect.Value{}, fmt.Errorf("invalid %s: %q", targetType.Name(), arg)
		}
		actual = resolved
	}

	val := reflect.New(targetType).Elem()
	switch targetType.Kind() {
	case reflect.String:
		val.SetString(actual)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(actual, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		val.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(actual, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		val.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(actual, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		val.SetFloat(f)
	case reflect.Bool:
		b, err := parseBoolValue(actual)
		if err != nil {
			return reflect.Value{}, err
		}
		val.SetBool(b)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported underlying type: %s", targetType.Kind())
	}
	return val, nil
}
