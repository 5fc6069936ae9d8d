package encoding

import (
	"fmt"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// objectChars is the grid object table. Each object has exactly one letter.
var objectChars = map[engine.GridObject]byte{
	engine.EmptyObject():                               'X',
	engine.DestroyedObject():                           'Y',
	engine.Obj(engine.Virus, engine.Color1):            'N',
	engine.Obj(engine.Virus, engine.Color2):            'V',
	engine.Obj(engine.Virus, engine.Color3):            'F',
	engine.Obj(engine.PillSegment, engine.Color1):      'K',
	engine.Obj(engine.PillSegment, engine.Color2):      'S',
	engine.Obj(engine.PillSegment, engine.Color3):      'C',
	engine.Obj(engine.PillTop, engine.Color1):          'O',
	engine.Obj(engine.PillTop, engine.Color2):          'W',
	engine.Obj(engine.PillTop, engine.Color3):          'G',
	engine.Obj(engine.PillBottom, engine.Color1):       'M',
	engine.Obj(engine.PillBottom, engine.Color2):       'U',
	engine.Obj(engine.PillBottom, engine.Color3):       'E',
	engine.Obj(engine.PillLeft, engine.Color1):         'L',
	engine.Obj(engine.PillLeft, engine.Color2):         'T',
	engine.Obj(engine.PillLeft, engine.Color3):         'D',
	engine.Obj(engine.PillRight, engine.Color1):        'J',
	engine.Obj(engine.PillRight, engine.Color2):        'R',
	engine.Obj(engine.PillRight, engine.Color3):        'B',
}

// charObjects is the reverse of objectChars, built in init.
var charObjects map[byte]engine.GridObject

func init() {
	charObjects = make(map[byte]engine.GridObject, len(objectChars))
	for obj, ch := range objectChars {
		if prev, dup := charObjects[ch]; dup {
			panic(fmt.Sprintf("encoding: %q used for both %s and %s", ch, prev, obj))
		}
		charObjects[ch] = obj
	}
}

// GridDictionary returns a copy of the grid object table.
func GridDictionary() map[engine.GridObject]byte {
	out := make(map[engine.GridObject]byte, len(objectChars))
	for obj, ch := range objectChars {
		out[obj] = ch
	}
	return out
}

// EncodeGridObject returns the letter for a grid object.
func EncodeGridObject(obj engine.GridObject) (byte, error) {
	ch, ok := objectChars[obj]
	if !ok {
		return 0, fmt.Errorf("%w: grid object %s", ErrEncode, obj)
	}
	return ch, nil
}

// DecodeGridObject returns the grid object for a letter.
func DecodeGridObject(ch byte) (engine.GridObject, error) {
	obj, ok := charObjects[ch]
	if !ok {
		return engine.GridObject{}, decodeErr("grid object", string(ch), "unknown character")
	}
	return obj, nil
}
