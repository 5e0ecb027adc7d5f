/* Package rubima: a tiny stack machine language

A rubima program is a line oriented listing of statements and label markers:

	push 1          # comments run from '#' to the end of the line
	:loop
	push 1
	add
	dup
	push 1000
	bigger          # 1000 > top?
	if :loop

Each statement compiles to one Instruction, whose index in the Program is its
program counter value. A marker line, like ":loop" above, defines a label at
the position of the next statement; labels may be referenced before they are
defined, and every reference to a name shares one *Label.

The instruction set is small:

	Name      Function
	nop       do nothing
	push N    push the integer constant N
	pop       discard the top of stack
	dup       duplicate the top of stack
	add       pop a, pop b, push a + b
	sub       pop a, pop b, push a - b
	mul       pop a, pop b, push a * b
	div       pop a, pop b, push b / a
	not       pop a, push !a
	smaller   pop a, pop b, push a < b
	bigger    pop a, pop b, push a > b
	goto :L   jump to label L
	if :L     pop a, jump to label L if a is true

The top of stack is the left operand of a binary operation, except for div,
where it is the divisor:

	push 3; push 10; sub    leaves 7
	push 10; push 2; div    leaves 5

Values are 32-bit integers or booleans. Integer arithmetic wraps around. When
used as a condition, every integer is true, even 0; only a false boolean is
false. After the program counter runs off the end of the program, the value on
top of the stack is the program's result.

Parse problems are reported as *ParseError, and evaluation failures as
*RuntimeError; both wrap one of the package's Err* values, for use with
errors.Is.

See cmd/rubima for a command line evaluator.

*/
package rubima
