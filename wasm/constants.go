package wasm

// WebAssembly binary format preamble.
var (
	// Magic is the module preamble "\0asm".
	Magic = [4]byte{0x00, 0x61, 0x73, 0x6D}

	// Version is binary format version 1, little-endian.
	Version = [4]byte{0x01, 0x00, 0x00, 0x00}
)

// Section IDs define the binary identifiers for each module section.
// The encoder emits Type, Function, Export and Code, in that order.
const (
	SectionCustom   byte = 0  // Custom section
	SectionType     byte = 1  // Type section (function signatures)
	SectionImport   byte = 2  // Import section
	SectionFunction byte = 3  // Function section (type indices)
	SectionTable    byte = 4  // Table section
	SectionMemory   byte = 5  // Memory section
	SectionGlobal   byte = 6  // Global section
	SectionExport   byte = 7  // Export section
	SectionStart    byte = 8  // Start section
	SectionElement  byte = 9  // Element section
	SectionCode     byte = 10 // Code section (function bodies)
	SectionData     byte = 11 // Data section
)

// Value type encodings as defined in the WebAssembly binary format.
const (
	ValI32 ValType = 0x7F // 32-bit integer
	ValI64 ValType = 0x7E // 64-bit integer
	ValF32 ValType = 0x7D // 32-bit float
	ValF64 ValType = 0x7C // 64-bit float
)

// Export descriptor kinds.
const (
	ExportFunc   ExportKind = 0x00
	ExportTable  ExportKind = 0x01
	ExportMemory ExportKind = 0x02
	ExportGlobal ExportKind = 0x03
)

// FuncTypeByte introduces every entry of the type section.
const FuncTypeByte byte = 0x60

// Control flow opcodes
const (
	OpReturn byte = 0x0F
	OpCall   byte = 0x10
	OpEnd    byte = 0x0B
)

// Parametric opcodes
const (
	OpDrop byte = 0x1A
)

// Variable access opcodes
const (
	OpLocalGet byte = 0x20
	OpLocalSet byte = 0x21
	OpLocalTee byte = 0x22
)

// Constant opcodes
const (
	OpI32Const byte = 0x41
	OpI64Const byte = 0x42
	OpF32Const byte = 0x43
	OpF64Const byte = 0x44
)

// Numeric opcodes
const (
	OpI32Add byte = 0x6A
	OpI32Sub byte = 0x6B
	OpI32Mul byte = 0x6C
	OpI64Add byte = 0x7C
)
