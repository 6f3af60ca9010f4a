package loop

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/draw"
)

// drawFrame draws the current frame.
func (v *Viewer) drawFrame() error {
	// On mode or inactivity transitions, do a full terminal clear so UI
	// elements from the previous screen don't persist.
	modeChanged := v.state.Mode != v.state.prevMode
	inactiveChanged := v.state.isInactive != v.state.wasInactive
	if modeChanged || inactiveChanged {
		v.chunkWriter.WriteString("\033[H\033[2J")
		v.canvas.ForceRedraw()
		v.state.prevMode = v.state.Mode
		v.state.wasInactive = v.state.isInactive
	}

	v.canvas.Clear()

	snap := v.hub.Snapshot()
	if v.state.Mode == ModeViewing && !v.state.isInactive {
		for _, c := range snap.Colliders {
			v.canvas.DrawCollider(c, draw.InkShape)
		}
		for _, res := range v.state.Results {
			v.canvas.DrawRay(res, config.HitMarkerRadius)
		}
		v.canvas.DrawMarker(v.state.Origin, 1, draw.InkViewer)
	}

	v.canvas.Render(v.chunkWriter)
	v.canvas.RenderBorder(v.chunkWriter)

	v.drawUI(snap)

	return v.chunkWriter.Flush()
}

// drawUI draws the text overlay.
func (v *Viewer) drawUI(snap *Snapshot) {
	termWidth := v.canvas.TerminalWidth()
	termHeight := v.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if v.state.Mode == ModeShutdown {
		v.drawShutdownScreen(centerX, centerY)
		return
	}

	if v.state.isInactive {
		v.drawInactivityScreen(centerX, centerY)
		return
	}

	switch v.state.Mode {
	case ModeStart:
		v.drawStartScreen(centerX, centerY, snap)
	case ModeViewing:
		v.drawViewingHUD(termWidth, termHeight, snap)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (v *Viewer) drawInactivityScreen(centerX, centerY int) {
	cw := v.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(v.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen.
func (v *Viewer) drawStartScreen(centerX, centerY int, snap *Snapshot) {
	// figlet "Calvin S" font
	titleArt := []string{
		"╦═╗╔═╗╦ ╦╔═╗╔═╗╔═╗╔╦╗╔═╗╦═╗",
		"╠╦╝╠═╣╚╦╝║  ╠═╣╚═╗ ║ ║╣ ╠╦╝",
		"╩╚═╩ ╩ ╩ ╚═╝╩ ╩╚═╝ ╩ ╚═╝╩╚═",
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, utf8.RuneCountInString(line))
	}

	cw := v.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := fmt.Sprintf("~ scene %q, %d colliders ~", snap.Scene.Name, len(snap.Colliders))
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"W S / Up Down  . . . . Move",
		"A D / < >  . . . . . Rotate",
		"SPACE  . . .  Fan / one ray",
		"1-9 . . . . . . .  Fan size",
		"+ - . . . . . .  Ray length",
		"Q  . . . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}
}

// drawViewingHUD draws the HUD while casting.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (v *Viewer) drawViewingHUD(termWidth, termHeight int, snap *Snapshot) {
	cw := v.chunkWriter
	s := v.state

	sceneText := fmt.Sprintf("%s  #%016x", snap.Scene.Name, snap.Fingerprint)
	cw.WriteAt(2, 1, sceneText)

	viewersText := fmt.Sprintf("Viewers: %-4d", v.hub.Viewers())
	cw.WriteAt(termWidth-len(viewersText)-1, 1, viewersText)

	hitText := fmt.Sprintf("%-48s", "no hit")
	if s.Nearest >= 0 {
		res := s.Results[s.Nearest]
		hitText = fmt.Sprintf("hit %-16.16s d:%-8.2f t:%-6.3f", snap.Name(res.Index), res.Length(), res.Hit.ShapeParam)
		v.drawHitLabel(snap.Name(res.Index), termWidth, termHeight)
	}
	cw.WriteAt(2, termHeight-1, hitText)

	coordText := fmt.Sprintf("X:%-6.1f Y:%-6.1f %5.1f°  rays:%-3d max:%-6.0f",
		s.Origin.X, s.Origin.Y, s.Heading, len(s.Rays), s.MaxLength)
	cw.WriteAt(2, termHeight, coordText)
}

// drawHitLabel writes name next to the nearest hit marker. The cells are
// marked dirty so the canvas cleans them up once the hit moves.
func (v *Viewer) drawHitLabel(name string, termWidth, termHeight int) {
	if name == "" {
		return
	}
	col, row := v.canvas.LogicalToTerminal(v.state.Results[v.state.Nearest].Point())
	col += 2
	if row < 2 || row > termHeight-2 || col < 1 || col+len(name) > termWidth {
		return
	}
	v.chunkWriter.WriteAt(col, row, name)
	v.canvas.MarkTextDirty(col, row, len(name))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (v *Viewer) drawShutdownScreen(centerX, centerY int) {
	cw := v.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(v.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
