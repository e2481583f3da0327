package libgengo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	constChar   = "="
	commentChar = "#"
	ioDelim     = "---"
)

type SyntaxError struct {
	FullName string
	Line     int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%s@%d] %s", e.FullName, e.Line, e.Message)
}

// convertConstantValue parses a constant literal. Booleans follow the
// Python literals accepted by the reference message parser.
func convertConstantValue(fieldType string, valueLiteral string) (interface{}, error) {
	switch fieldType {
	case "float32":
		result, err := strconv.ParseFloat(valueLiteral, 32)
		return float32(result), err
	case "float64":
		return strconv.ParseFloat(valueLiteral, 64)
	case "string":
		return strings.TrimSpace(valueLiteral), nil
	case "byte", "int8":
		result, err := strconv.ParseInt(valueLiteral, 0, 8)
		return int8(result), err
	case "int16":
		result, err := strconv.ParseInt(valueLiteral, 0, 16)
		return int16(result), err
	case "int32":
		result, err := strconv.ParseInt(valueLiteral, 0, 32)
		return int32(result), err
	case "int64":
		return strconv.ParseInt(valueLiteral, 0, 64)
	case "char", "uint8":
		result, err := strconv.ParseUint(valueLiteral, 0, 8)
		return uint8(result), err
	case "uint16":
		result, err := strconv.ParseUint(valueLiteral, 0, 16)
		return uint16(result), err
	case "uint32":
		result, err := strconv.ParseUint(valueLiteral, 0, 32)
		return uint32(result), err
	case "uint64":
		return strconv.ParseUint(valueLiteral, 0, 64)
	case "bool":
		switch valueLiteral {
		case "None", "False":
			return false, nil
		case "True":
			return true, nil
		}
		val, err := strconv.ParseUint(valueLiteral, 10, 0)
		if err != nil {
			return nil, errors.Errorf("invalid constant literal for bool: [%s]", valueLiteral)
		}
		return val != 0, nil
	}
	return nil, errors.Errorf("invalid constant type: [%s]", fieldType)
}

func stripComment(line string) string {
	return strings.TrimSpace(strings.SplitN(line, commentChar, 2)[0])
}

func loadConstantLine(line string) (Constant, error) {
	cleanLine := stripComment(line)
	fields := strings.Fields(cleanLine)
	if len(fields) < 2 {
		return Constant{}, errors.New("could not find a constant name after the type name")
	}
	fieldType := fields[0]
	if !isPrimitiveType(fieldType) {
		return Constant{}, errors.Errorf("[%s] is not a legal constant type", fieldType)
	}

	// String constants take everything right of the equal sign, comment
	// characters included.
	source := cleanLine
	if fieldType == "string" {
		source = strings.TrimSpace(line)
	}
	keyValue := strings.TrimSpace(source[len(fieldType):])
	kv := strings.SplitN(keyValue, constChar, 2)
	if len(kv) != 2 {
		return Constant{}, errors.New("a constant definition requires its value")
	}
	name := strings.TrimSpace(kv[0])
	valueText := strings.TrimSpace(kv[1])

	value, err := convertConstantValue(fieldType, valueText)
	if err != nil {
		return Constant{}, err
	}
	return Constant{Type: fieldType, Name: name, Value: value, ValueText: valueText}, nil
}

// loadFieldLine parses a field declaration of a message in packageName.
// Unqualified message types resolve to packageName, Header to
// std_msgs/Header.
func loadFieldLine(line string, packageName string) (Field, error) {
	parts := strings.Fields(stripComment(line))
	if len(parts) != 2 {
		return Field{}, errors.Errorf("invalid declaration: %s", line)
	}
	declared, name := parts[0], parts[1]
	if !isValidMsgFieldName(name) {
		return Field{}, errors.Errorf("%s is not a legal message field name", name)
	}
	if !isValidMsgType(declared) {
		return Field{}, errors.Errorf("%s is not a legal message field type", declared)
	}

	fieldType := declared
	base := baseMsgType(declared)
	switch {
	case base == HeaderType:
		fieldType = HeaderFullName + declared[len(base):]
	case !strings.Contains(base, "/") && !isBuiltinType(base):
		fieldType = packageName + "/" + declared
	}
	pkg, baseType, isArray, arrayLen, err := parseType(fieldType)
	if err != nil {
		return Field{}, err
	}
	return NewField(pkg, baseType, name, declared, isArray, arrayLen), nil
}

// parseMsg parses the definition text of the message fullname.
func parseMsg(text string, fullname string) (*MsgSpec, error) {
	packageName, shortName, err := packageResourceName(fullname)
	if err != nil {
		return nil, err
	}
	spec := &MsgSpec{
		Text:      text,
		FullName:  fullname,
		ShortName: shortName,
		Package:   packageName,
	}
	for i, line := range strings.Split(text, "\n") {
		clean := stripComment(line)
		switch {
		case clean == "":
		case strings.Contains(clean, constChar):
			c, err := loadConstantLine(line)
			if err != nil {
				return nil, &SyntaxError{fullname, i + 1, err.Error()}
			}
			spec.Constants = append(spec.Constants, c)
		default:
			f, err := loadFieldLine(line, packageName)
			if err != nil {
				return nil, &SyntaxError{fullname, i + 1, err.Error()}
			}
			spec.Fields = append(spec.Fields, f)
		}
	}
	return spec, nil
}

// splitSrv splits a service definition into request and response text.
func splitSrv(text string) (string, string, error) {
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == ioDelim {
			return strings.Join(lines[:i], ""), strings.Join(lines[i+1:], ""), nil
		}
	}
	return "", "", errors.Errorf("missing '%s'", ioDelim)
}
