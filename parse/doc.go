package parse

// Parser for a restricted form of C function prototypes.
//
//
// Glossary:
//
// Prototype
// ---------
//
// A function declaration giving the return type, the function name and
// a named parameter list, terminated by a semicolon.
//
// e.g.
// size_t read(int fd, char *buf, size_t count);
// ^^^^^^ ^^^^ ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
// return name parameters
//
// Type
// ----
//
// Any number of qualifiers, exactly one specifier keyword from a fixed
// set, then any number of pointer stars. Multi keyword specifiers such
// as "unsigned long" are outside the subset, the second keyword is taken
// for the declarator name instead.
//
// e.g.
// const char *
// ^^^^^ ^^^^ ^
// qual  spec pointer
