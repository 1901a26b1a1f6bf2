// Package identicon рисует детерминированную SVG-аватарку по ключу сотрудника.
//
// Ключ хешируется SHA-256 с префиксом версии. Первые байты дайджеста задают
// цвет, следующие 15 бит - заполнение левой половины сетки 5x5, которая
// зеркалится вправо.
package identicon

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/St1cky1/flight-planner/internal/entity"
)

const (
	ContentType = entity.MediaTypeSVG

	gridSize   = 5
	cellSize   = 50
	padding    = 25
	imageSize  = gridSize*cellSize + 2*padding
	background = "#f0f0f0"

	hashVersion = "identicon-v1"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate возвращает SVG и его content-type. Одинаковый ключ -> одинаковые байты.
func (g *Generator) Generate(identityKey string) ([]byte, entity.MediaType, error) {
	if strings.TrimSpace(identityKey) == "" {
		return nil, "", fmt.Errorf("%w: identity key is empty", entity.ErrInvalidInput)
	}

	digest := digestOf(identityKey)
	grid := pattern(digest)
	color := foreground(digest)

	return render(grid, color), ContentType, nil
}

func digestOf(identityKey string) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(hashVersion))
	h.Write([]byte{0})
	h.Write([]byte(identityKey))

	var digest [sha256.Size]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// pattern - сетка [строка][столбец]; столбцы 3 и 4 зеркалят 1 и 0
func pattern(digest [sha256.Size]byte) [gridSize][gridSize]bool {
	var grid [gridSize][gridSize]bool
	half := (gridSize + 1) / 2

	filled := 0
	bit := 0
	for col := 0; col < half; col++ {
		for row := 0; row < gridSize; row++ {
			b := digest[4+bit/8]
			on := (b>>(7-uint(bit%8)))&1 == 1
			bit++

			grid[row][col] = on
			grid[row][gridSize-1-col] = on
			if on {
				filled++
			}
		}
	}

	if filled == 0 {
		grid[gridSize/2][gridSize/2] = true
	}

	return grid
}

// foreground - насыщенность 45-65%, светлота 45-60%, чтобы цвет читался на светлом фоне
func foreground(digest [sha256.Size]byte) string {
	hue := float64(binary.BigEndian.Uint16(digest[0:2]) % 360)
	saturation := float64(45+int(digest[2])%21) / 100
	lightness := float64(45+int(digest[3])%16) / 100

	r, g, b := hslToRGB(hue, saturation, lightness)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return toByte(r + m), toByte(g + m), toByte(b + m)
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func render(grid [gridSize][gridSize]bool, color string) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		imageSize, imageSize, imageSize, imageSize)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="%s"/>`, imageSize, imageSize, background)

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			if !grid[row][col] {
				continue
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				padding+col*cellSize, padding+row*cellSize, cellSize, cellSize, color)
		}
	}

	sb.WriteString(`</svg>`)
	return []byte(sb.String())
}
