package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nouspsyche/launchpad/internal/domain"
)

// ConvertArgs converts plan literals (string, bool, *big.Int) into the Go
// types go-ethereum packs for each input.
func ConvertArgs(inputs abi.Arguments, values []any) ([]any, error) {
	if len(inputs) != len(values) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(values))
	}

	converted := make([]any, len(values))
	for i, input := range inputs {
		v, err := convertValue(input.Type, values[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		converted[i] = v
	}
	return converted, nil
}

// EncodeConstructorArgs returns the ABI-encoded constructor arguments as hex
// without 0x prefix, the form block explorers expect.
func EncodeConstructorArgs(contractABI abi.ABI, values []any) (string, error) {
	inputs := contractABI.Constructor.Inputs
	if len(inputs) == 0 && len(values) == 0 {
		return "", nil
	}

	converted, err := ConvertArgs(inputs, values)
	if err != nil {
		return "", err
	}
	packed, err := inputs.Pack(converted...)
	if err != nil {
		return "", fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return common.Bytes2Hex(packed), nil
}

func convertValue(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		s, ok := v.(string)
		if !ok || !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, v)
		}
		return common.HexToAddress(s), nil

	case abi.BoolTy:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return strconv.ParseBool(b)
		}
		return nil, fmt.Errorf("expected bool, got %T", v)

	case abi.StringTy:
		switch s := v.(type) {
		case string:
			return s, nil
		case *big.Int:
			return s.String(), nil
		}
		return nil, fmt.Errorf("expected string, got %T", v)

	case abi.BytesTy:
		return decodeHex(v)

	case abi.FixedBytesTy:
		b, err := decodeHex(v)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("value has %d bytes, bytes%d holds %d", len(b), t.Size, t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.IntTy, abi.UintTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		if err := checkRange(t, n); err != nil {
			return nil, err
		}
		if t.Size > 64 {
			return n, nil
		}
		if t.T == abi.UintTy {
			return reflect.ValueOf(n.Uint64()).Convert(t.GetType()).Interface(), nil
		}
		return reflect.ValueOf(n.Int64()).Convert(t.GetType()).Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

func decodeHex(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected 0x-prefixed hex, got %T", v)
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return new(big.Int).Set(n), nil
	case string:
		s, base := strings.ReplaceAll(n, "_", ""), 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s, base = s[2:], 16
		}
		out, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", n)
		}
		return out, nil
	case int64:
		return big.NewInt(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	}
	return nil, fmt.Errorf("expected integer, got %T", v)
}

func checkRange(t abi.Type, n *big.Int) error {
	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return fmt.Errorf("negative value %s for %s", n, t.String())
		}
		if n.BitLen() > t.Size {
			return fmt.Errorf("value %s overflows %s", n, t.String())
		}
		return nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	lowest := new(big.Int).Neg(limit)
	highest := new(big.Int).Sub(limit, big.NewInt(1))
	if n.Cmp(lowest) < 0 || n.Cmp(highest) > 0 {
		return fmt.Errorf("value %s overflows %s", n, t.String())
	}
	return nil
}
