package admin

import (
	"fmt"
	"strconv"

	"fillwire.dev/fillwire/registry"
)

func toDTO(t registry.Tag) tagDTO {
	dto := tagDTO{ID: t.ID, Name: t.Name, Type: t.Type.String(), Access: accessString(t.Access)}
	if t.Type == registry.String {
		dto.Value = string(t.Value().(registry.StringValue))
	} else {
		dto.Value = fmt.Sprint(t.Value())
	}
	return dto
}

func fromDTO(dto tagDTO) (registry.Tag, error) {
	typ, err := dataTypeFromString(dto.Type)
	if err != nil {
		return registry.Tag{}, err
	}
	access, err := accessFromString(dto.Access)
	if err != nil {
		return registry.Tag{}, err
	}
	value, err := valueFromDTOString(typ, dto.Value)
	if err != nil {
		return registry.Tag{}, err
	}
	return registry.NewTag(dto.ID, dto.Name, typ, access, value)
}

func valueFromDTOString(typ registry.DataType, s string) (registry.Value, error) {
	switch typ {
	case registry.Integer:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, err
		}
		return registry.IntValue(n), nil
	case registry.Unsigned:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, err
		}
		return registry.UintValue(n), nil
	case registry.Float:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, err
		}
		return registry.FloatValue(f), nil
	case registry.String:
		return registry.StringValue(s), nil
	default:
		return nil, fmt.Errorf("admin: unknown data type %v", typ)
	}
}

func dataTypeFromString(s string) (registry.DataType, error) {
	switch s {
	case "Integer":
		return registry.Integer, nil
	case "Unsigned":
		return registry.Unsigned, nil
	case "Float":
		return registry.Float, nil
	case "String":
		return registry.String, nil
	default:
		return 0, fmt.Errorf("admin: unknown data type %q", s)
	}
}

func accessString(a registry.Access) string {
	switch a {
	case registry.ReadOnly:
		return "ReadOnly"
	case registry.WriteOnly:
		return "WriteOnly"
	case registry.ReadWrite:
		return "ReadWrite"
	default:
		return "Unknown"
	}
}

func accessFromString(s string) (registry.Access, error) {
	switch s {
	case "ReadOnly":
		return registry.ReadOnly, nil
	case "WriteOnly":
		return registry.WriteOnly, nil
	case "ReadWrite":
		return registry.ReadWrite, nil
	default:
		return 0, fmt.Errorf("admin: unknown access %q", s)
	}
}
