package signals

// Mutator is the write handle of a cell. Every mutation reads the current
// value, writes the new one and publishes exactly once.
type Mutator[T any] struct {
	r ref[T]
}

// Set stores v and publishes.
func (m Mutator[T]) Set(v T) {
	m.r.slot().value = v
	m.r.arena.publish(m.r.id)
}

// Update stores fn(current) and publishes.
func (m Mutator[T]) Update(fn func(T) T) {
	sl := m.r.slot()
	cur, _ := sl.value.(T)
	sl.value = fn(cur)
	m.r.arena.publish(m.r.id)
}

// Get returns the value the mutator would modify.
func (m Mutator[T]) Get() T {
	return m.r.Get()
}

// Integer is the constraint of the bitwise and remainder mutators.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Number is the constraint of the arithmetic mutators.
type Number interface {
	Integer | ~float32 | ~float64 | ~complex64 | ~complex128
}

// Addable extends Number with strings, which concatenate.
type Addable interface {
	Number | ~string
}

// Add performs "+=".
func Add[T Addable](m Mutator[T], v T) {
	m.Update(func(x T) T { return x + v })
}

// Sub performs "-=".
func Sub[T Number](m Mutator[T], v T) {
	m.Update(func(x T) T { return x - v })
}

// Mul performs "*=".
func Mul[T Number](m Mutator[T], v T) {
	m.Update(func(x T) T { return x * v })
}

// Div performs "/=". Integer division by zero panics as in plain Go.
func Div[T Number](m Mutator[T], v T) {
	m.Update(func(x T) T { return x / v })
}

// Rem performs "%=".
func Rem[T Integer](m Mutator[T], v T) {
	m.Update(func(x T) T { return x % v })
}

// And performs "&=".
func And[T Integer](m Mutator[T], v T) {
	m.Update(func(x T) T { return x & v })
}

// Or performs "|=".
func Or[T Integer](m Mutator[T], v T) {
	m.Update(func(x T) T { return x | v })
}

// Xor performs "^=".
func Xor[T Integer](m Mutator[T], v T) {
	m.Update(func(x T) T { return x ^ v })
}

// Shl performs "<<=".
func Shl[T Integer](m Mutator[T], v T) {
	m.Update(func(x T) T { return x << v })
}

// Shr performs ">>=".
func Shr[T Integer](m Mutator[T], v T) {
	m.Update(func(x T) T { return x >> v })
}
