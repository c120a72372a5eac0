package game

import "math"

// Checked arithmetic over the ledger's integer domains. Balances and
// tickets are int64, trophy-style counters int32. An overflow returns
// ErrOverflow so the enclosing transaction aborts instead of wrapping.

// CheckedAdd64 returns a+b or ErrOverflow. Operands are never negative in
// this ledger, so only the upper bound is checked.
func CheckedAdd64(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, ErrOverflow
	}

	return a + b, nil
}

// CheckedSub64 returns a-b, or ErrOverflow when the result would go below
// zero. Callers pre-check balances, so hitting this means a logic error,
// but the ledger still refuses to wrap.
func CheckedSub64(a, b int64) (int64, error) {
	if b > a {
		return 0, ErrOverflow
	}

	return a - b, nil
}

// CheckedMul64 returns a*b or ErrOverflow.
func CheckedMul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt64/b {
		return 0, ErrOverflow
	}

	return a * b, nil
}

// CheckedAdd32 returns a+b or ErrOverflow.
func CheckedAdd32(a, b int32) (int32, error) {
	if a > math.MaxInt32-b {
		return 0, ErrOverflow
	}

	return a + b, nil
}

// SaturatingSub32 returns a-b clamped at zero. Trophy loss is the one
// mutation that clamps instead of failing.
func SaturatingSub32(a, b int32) int32 {
	if b > a {
		return 0
	}

	return a - b
}
