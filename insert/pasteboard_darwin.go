//go:build darwin

package insert

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit -framework Foundation

#include <stdlib.h>
#include <string.h>

#import <AppKit/AppKit.h>

static NSMutableArray<NSPasteboardItem*>* om_pending = nil;

static int om_pb_item_count(void) {
	NSArray* items = [[NSPasteboard generalPasteboard] pasteboardItems];
	return (int)items.count;
}

static int om_pb_type_count(int item) {
	NSArray<NSPasteboardItem*>* items = [[NSPasteboard generalPasteboard] pasteboardItems];
	if (item < 0 || item >= (int)items.count) {
		return 0;
	}
	return (int)items[item].types.count;
}

static char* om_pb_type(int item, int idx) {
	NSArray<NSPasteboardItem*>* items = [[NSPasteboard generalPasteboard] pasteboardItems];
	if (item < 0 || item >= (int)items.count) {
		return NULL;
	}
	NSArray<NSPasteboardType>* types = items[item].types;
	if (idx < 0 || idx >= (int)types.count) {
		return NULL;
	}
	return strdup(types[idx].UTF8String);
}

static void* om_pb_data(int item, int idx, int* lenOut) {
	*lenOut = 0;
	NSArray<NSPasteboardItem*>* items = [[NSPasteboard generalPasteboard] pasteboardItems];
	if (item < 0 || item >= (int)items.count) {
		return NULL;
	}
	NSArray<NSPasteboardType>* types = items[item].types;
	if (idx < 0 || idx >= (int)types.count) {
		return NULL;
	}
	NSData* data = [items[item] dataForType:types[idx]];
	if (data == nil) {
		return NULL;
	}
	void* buf = malloc(data.length > 0 ? data.length : 1);
	memcpy(buf, data.bytes, data.length);
	*lenOut = (int)data.length;
	return buf;
}

static void om_pb_write_string(const char* text) {
	NSPasteboard* pb = [NSPasteboard generalPasteboard];
	[pb clearContents];
	[pb setString:[NSString stringWithUTF8String:text] forType:NSPasteboardTypeString];
}

static void om_pb_restore_begin(void) {
	om_pending = [NSMutableArray array];
}

static void om_pb_restore_new_item(void) {
	[om_pending addObject:[[NSPasteboardItem alloc] init]];
}

static void om_pb_restore_set_data(const char* type, const void* bytes, int len) {
	if (om_pending.count == 0) {
		return;
	}
	NSPasteboardItem* item = om_pending.lastObject;
	NSData* data = [NSData dataWithBytes:bytes length:(NSUInteger)len];
	[item setData:data forType:[NSString stringWithUTF8String:type]];
}

static int om_pb_restore_commit(void) {
	NSPasteboard* pb = [NSPasteboard generalPasteboard];
	[pb clearContents];
	BOOL ok = [pb writeObjects:om_pending];
	om_pending = nil;
	return ok ? 0 : -1;
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

// pasteboard is the NSPasteboard-backed Clipboard. All calls must run on
// the main context.
type pasteboard struct{}

// NewClipboard returns the macOS general-pasteboard adapter.
func NewClipboard() Clipboard {
	return pasteboard{}
}

func (pasteboard) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{}

	itemCount := int(C.om_pb_item_count())
	for i := 0; i < itemCount; i++ {
		item := Item{}
		typeCount := int(C.om_pb_type_count(C.int(i)))
		for j := 0; j < typeCount; j++ {
			ctype := C.om_pb_type(C.int(i), C.int(j))
			if ctype == nil {
				continue
			}
			repType := C.GoString(ctype)
			C.free(unsafe.Pointer(ctype))

			var clen C.int
			cdata := C.om_pb_data(C.int(i), C.int(j), &clen)
			if cdata == nil {
				continue
			}
			data := C.GoBytes(cdata, clen)
			C.free(cdata)

			item.Representations = append(item.Representations, Representation{
				Type: repType,
				Data: data,
			})
		}
		if len(item.Representations) > 0 {
			snap.Items = append(snap.Items, item)
		}
	}

	return snap, nil
}

func (pasteboard) WriteString(text string) error {
	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	C.om_pb_write_string(ctext)
	return nil
}

func (pasteboard) Restore(snap *Snapshot) error {
	C.om_pb_restore_begin()
	for _, item := range snap.Items {
		C.om_pb_restore_new_item()
		for _, rep := range item.Representations {
			ctype := C.CString(rep.Type)
			var ptr unsafe.Pointer
			if len(rep.Data) > 0 {
				ptr = unsafe.Pointer(&rep.Data[0])
			}
			C.om_pb_restore_set_data(ctype, ptr, C.int(len(rep.Data)))
			C.free(unsafe.Pointer(ctype))
		}
	}
	if C.om_pb_restore_commit() != 0 {
		return errors.New("pasteboard rejected restored items")
	}
	return nil
}
