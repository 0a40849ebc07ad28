// Command libgramlint builds the C shared library:
//
//	go build -buildmode=c-shared -o libgramlint.so ./cmd/libgramlint
//
// The generated libgramlint.h declares every gramlint_* function. Strings
// returned by the library are owned by the caller and released with free().
// The lint array returned by gramlint_get_lints is released, together with
// every lint in it, by gramlint_free_lints.
package main

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef uintptr_t gramlint_document;
typedef uintptr_t gramlint_lint_group;
typedef uintptr_t gramlint_lint;
*/
import "C"

import (
	"unsafe"

	"github.com/yaklabco/gramlint/pkg/abi"
)

func main() {}

// cString copies s into C memory, or returns NULL when ok is false.
func cString(s string, ok bool) *C.char {
	if !ok {
		return nil
	}
	return C.CString(s)
}

//export gramlint_create_document
func gramlint_create_document(text *C.char) C.gramlint_document {
	if text == nil {
		return 0
	}
	b := C.GoBytes(unsafe.Pointer(text), C.int(C.strlen(text)))
	if b == nil {
		b = []byte{}
	}
	return C.gramlint_document(abi.CreateDocument(b))
}

//export gramlint_free_document
func gramlint_free_document(doc C.gramlint_document) {
	abi.FreeDocument(abi.Handle(doc))
}

//export gramlint_get_document_text
func gramlint_get_document_text(doc C.gramlint_document) *C.char {
	return cString(abi.GetDocumentText(abi.Handle(doc)))
}

//export gramlint_get_token_count
func gramlint_get_token_count(doc C.gramlint_document) C.int32_t {
	return C.int32_t(abi.GetTokenCount(abi.Handle(doc)))
}

//export gramlint_get_token_text
func gramlint_get_token_text(doc C.gramlint_document, index C.int32_t) *C.char {
	return cString(abi.GetTokenText(abi.Handle(doc), int32(index)))
}

//export gramlint_create_lint_group
func gramlint_create_lint_group() C.gramlint_lint_group {
	return C.gramlint_lint_group(abi.CreateLintGroup())
}

//export gramlint_free_lint_group
func gramlint_free_lint_group(group C.gramlint_lint_group) {
	abi.FreeLintGroup(abi.Handle(group))
}

//export gramlint_get_lints
func gramlint_get_lints(doc C.gramlint_document, group C.gramlint_lint_group, count *C.int32_t) *C.gramlint_lint {
	lints, n := abi.GetLints(abi.Handle(doc), abi.Handle(group))
	if count != nil {
		*count = C.int32_t(n)
	}
	if n <= 0 {
		return nil
	}

	size := C.size_t(n) * C.size_t(unsafe.Sizeof(C.gramlint_lint(0)))
	arr := (*C.gramlint_lint)(C.malloc(size))
	view := unsafe.Slice(arr, n)
	for i, h := range lints {
		view[i] = C.gramlint_lint(h)
	}
	return arr
}

//export gramlint_free_lints
func gramlint_free_lints(lints *C.gramlint_lint, count C.int32_t) {
	if lints == nil {
		return
	}
	if count > 0 {
		view := unsafe.Slice(lints, int(count))
		handles := make([]abi.Handle, len(view))
		for i, h := range view {
			handles[i] = abi.Handle(h)
		}
		abi.FreeLints(handles, int32(count))
	}
	C.free(unsafe.Pointer(lints))
}

//export gramlint_get_lint_message
func gramlint_get_lint_message(lint C.gramlint_lint) *C.char {
	return cString(abi.GetLintMessage(abi.Handle(lint)))
}

// gramlint_get_lint_range writes the byte range of lint to start and end and
// returns 0, or returns -1 and writes -1 to both.
//
//export gramlint_get_lint_range
func gramlint_get_lint_range(lint C.gramlint_lint, start, end *C.int32_t) C.int32_t {
	s, e := abi.GetLintRange(abi.Handle(lint))
	if start != nil {
		*start = C.int32_t(s)
	}
	if end != nil {
		*end = C.int32_t(e)
	}
	if s == abi.Invalid {
		return -1
	}
	return 0
}

//export gramlint_get_suggestion_count
func gramlint_get_suggestion_count(lint C.gramlint_lint) C.int32_t {
	return C.int32_t(abi.GetSuggestionCount(abi.Handle(lint)))
}

//export gramlint_get_suggestion_text
func gramlint_get_suggestion_text(lint C.gramlint_lint, index C.int32_t) *C.char {
	return cString(abi.GetSuggestionText(abi.Handle(lint), int32(index)))
}

//export gramlint_get_engine_version
func gramlint_get_engine_version() *C.char {
	return C.CString(abi.GetEngineVersion())
}

//export gramlint_get_binding_version
func gramlint_get_binding_version() *C.char {
	return C.CString(abi.GetBindingVersion())
}
