package live

import "fmt"

const clientScript = `<script>
(function() {
  var reconnectAttempts = 0;
  var maxReconnectDelay = 5000;

  function connect() {
    var protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + window.location.host + %q);

    ws.onopen = function() {
      reconnectAttempts = 0;
    };

    ws.onmessage = function(e) {
      var msg = JSON.parse(e.data);
      if (msg.type === 'panel') {
        var current = document.getElementById('panel');
        if (!current) return;
        var tmp = document.createElement('div');
        tmp.innerHTML = msg.html;
        var next = tmp.firstElementChild;
        current.replaceWith(next);
        if (window.htmx) window.htmx.process(next);
      } else if (msg.type === 'reload') {
        console.log('[live] Reloading:', msg.file);
        window.location.reload();
      }
    };

    ws.onclose = function() {
      var delay = Math.min(1000 * Math.pow(2, reconnectAttempts), maxReconnectDelay);
      reconnectAttempts++;
      setTimeout(connect, delay);
    };
  }

  connect();
})();
</script>`

// ClientScript returns the browser side of the hub: it swaps the panel on
// "panel" messages and reloads the page on "reload" messages.
func ClientScript(path string) string {
	return fmt.Sprintf(clientScript, path)
}
