package audio

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Manager handles playback of the loading cue and the background music
type Manager struct {
	enabled  bool
	cue      rl.Sound
	hasCue   bool
	music    rl.Music
	hasMusic bool
}

// Disabled returns a manager whose methods do nothing
func Disabled() *Manager {
	return &Manager{}
}

// Init opens the audio device and loads both sounds. A device that fails to
// open, or a file that fails to load, is logged and left silent.
func Init(cuePath, musicPath string, cueVolume, musicVolume float32) *Manager {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		log.Println("Audio: device unavailable, running silent")
		return Disabled()
	}
	m := &Manager{enabled: true}

	m.cue = rl.LoadSound(cuePath)
	if rl.IsSoundValid(m.cue) {
		rl.SetSoundVolume(m.cue, cueVolume)
		m.hasCue = true
	} else {
		log.Printf("Audio: failed to load %s", cuePath)
	}

	m.music = rl.LoadMusicStream(musicPath)
	if rl.IsMusicValid(m.music) {
		rl.SetMusicVolume(m.music, musicVolume)
		m.hasMusic = true
	} else {
		log.Printf("Audio: failed to load %s", musicPath)
	}
	return m
}

// RestartCue plays the loading cue from the start
func (m *Manager) RestartCue() {
	if !m.hasCue {
		return
	}
	if rl.IsSoundPlaying(m.cue) {
		rl.StopSound(m.cue)
	}
	rl.PlaySound(m.cue)
}

// EnsureMusic feeds the music stream and restarts it when it has stopped
func (m *Manager) EnsureMusic() {
	if !m.hasMusic {
		return
	}
	if !rl.IsMusicStreamPlaying(m.music) {
		rl.PlayMusicStream(m.music)
	}
	rl.UpdateMusicStream(m.music)
}

// Close unloads the sounds and shuts down the audio device
func (m *Manager) Close() {
	if !m.enabled {
		return
	}
	if m.hasCue {
		rl.UnloadSound(m.cue)
	}
	if m.hasMusic {
		rl.UnloadMusicStream(m.music)
	}
	rl.CloseAudioDevice()
	m.enabled, m.hasCue, m.hasMusic = false, false, false
}
